package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/wavesim/internal/solver"
)

const (
	profileWidth  = 80
	profileHeight = 16
)

// TickMsg drives the animation clock.
type TickMsg time.Time

// Player is a bubbletea model replaying the snapshot log of a completed
// run as a terminal animation.
type Player struct {
	title   string
	coords  []float64
	snaps   []solver.Snapshot
	frame   int
	playing bool
	fps     int
	amp     float64 // fixed vertical scale over the whole run
}

// NewPlayer builds a Player over a run's snapshot log.
func NewPlayer(title string, coords []float64, snaps []solver.Snapshot, fps int) Player {
	if fps < 1 {
		fps = 30
	}
	amp := 0.0
	for _, s := range snaps {
		if a := s.Field.MaxAbs(); a > amp {
			amp = a
		}
	}
	return Player{
		title:   title,
		coords:  coords,
		snaps:   snaps,
		playing: true,
		fps:     fps,
		amp:     amp,
	}
}

func (p Player) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(p.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (p Player) Init() tea.Cmd {
	return p.tick()
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case " ":
			p.playing = !p.playing
		case "r":
			p.frame = 0
			p.playing = true
		case "left", "h":
			p.playing = false
			if p.frame > 0 {
				p.frame--
			}
		case "right", "l":
			p.playing = false
			if p.frame < len(p.snaps)-1 {
				p.frame++
			}
		}
	case TickMsg:
		if p.playing && len(p.snaps) > 0 {
			p.frame = (p.frame + 1) % len(p.snaps)
		}
		return p, p.tick()
	}
	return p, nil
}

func (p Player) View() string {
	if len(p.snaps) == 0 {
		return "no snapshots to replay\n"
	}
	snap := p.snaps[p.frame]

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("wavesim · "+p.title) + "\n")
	b.WriteString(CanvasStyle.Render(RenderProfile(p.coords, snap.Field, profileWidth, profileHeight, p.amp)))
	b.WriteByte('\n')

	status := StatusRunning.Render("playing")
	if !p.playing {
		status = StatusPaused.Render("paused")
	}
	b.WriteString(fmt.Sprintf("%s  %s\n",
		LabelStyle.Render("status"), status))
	b.WriteString(fmt.Sprintf("%s  %s\n",
		LabelStyle.Render("step"),
		ValueStyle.Render(fmt.Sprintf("%d  (t=%.5g)", snap.Step, snap.Time))))
	b.WriteString(fmt.Sprintf("%s  %s\n",
		LabelStyle.Render("energy"),
		ValueStyle.Render(fmt.Sprintf("%.6g", snap.Energy))))
	frac := 1.0
	if len(p.snaps) > 1 {
		frac = float64(p.frame) / float64(len(p.snaps)-1)
	}
	b.WriteString(fmt.Sprintf("%s  %s %d/%d\n",
		LabelStyle.Render("frame"),
		ProgressBar(frac, 40), p.frame+1, len(p.snaps)))

	b.WriteString(HelpStyle.Render("space pause · ←/→ scrub · r restart · q quit"))
	return b.String()
}
