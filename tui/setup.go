package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"birdroyale/game"
)

var policies = []string{game.PolicyHunter, game.PolicyJitter}

// Settings are the per-game choices made on the setup form.
type Settings struct {
	Seed    uint64
	SeedSet bool // false means pick a random seed
	Bots    int
	Policy  string
	Audio   bool
}

func DefaultSettings(t game.Tuning) Settings {
	return Settings{Bots: t.Bots, Policy: t.BotPolicy, Audio: true}
}

// ParseSettings validates the raw form fields. An empty seed means random.
func ParseSettings(seed, bots, policy string, audio bool) (Settings, error) {
	s := Settings{Policy: policy, Audio: audio}
	if seed = strings.TrimSpace(seed); seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return Settings{}, fmt.Errorf("seed %q: not a number", seed)
		}
		s.Seed, s.SeedSet = v, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(bots))
	if err != nil || n < 0 || n > game.MaxBots {
		return Settings{}, fmt.Errorf("bots %q: want 0-%d", bots, game.MaxBots)
	}
	s.Bots = n
	if policy != game.PolicyHunter && policy != game.PolicyJitter {
		return Settings{}, fmt.Errorf("unknown bot policy %q", policy)
	}
	return s, nil
}

// Apply writes the settings into a tuning.
func (s Settings) Apply(t game.Tuning) game.Tuning {
	t.Bots = s.Bots
	t.BotPolicy = s.Policy
	return t
}

// RunSetup shows the setup form. ok is false when the player cancels.
func RunSetup(def Settings) (settings Settings, ok bool, err error) {
	app := tview.NewApplication()

	seed := ""
	if def.SeedSet {
		seed = strconv.FormatUint(def.Seed, 10)
	}
	bots := strconv.Itoa(def.Bots)
	policy := def.Policy
	audio := def.Audio

	policyIndex := 0
	for i, p := range policies {
		if p == def.Policy {
			policyIndex = i
		}
	}

	form := tview.NewForm()
	form.SetBorder(true)
	form.SetTitle(" Bird Royale ")
	form.SetBorderColor(tcell.ColorGold)
	form.SetTitleColor(tcell.ColorGold)
	form.SetLabelColor(tcell.ColorGold)
	form.SetFieldBackgroundColor(tcell.ColorWhite)
	form.SetFieldTextColor(tcell.ColorBlack)
	form.AddInputField("Seed (blank = random)", seed, 22, tview.InputFieldInteger, func(text string) { seed = text })
	form.AddInputField("Bots", bots, 4, tview.InputFieldInteger, func(text string) { bots = text })
	form.AddDropDown("Bot policy", policies, policyIndex, func(option string, _ int) { policy = option })
	form.AddCheckbox("Sound", audio, func(checked bool) { audio = checked })

	form.AddButton("Play", func() {
		s, perr := ParseSettings(seed, bots, policy, audio)
		if perr != nil {
			form.SetTitle(" " + perr.Error() + " ")
			form.SetTitleColor(tcell.ColorRed)
			return
		}
		settings, ok = s, true
		app.Stop()
	})
	form.AddButton("Quit", app.Stop)
	form.SetCancelFunc(app.Stop)

	if err := app.SetRoot(form, true).Run(); err != nil {
		return Settings{}, false, err
	}
	return settings, ok, nil
}
