package config

import (
	"fmt"

	"github.com/calder-games/stagehand/internal/fancy"
)

// Tree builds a styled tree representation of the configuration.
func (c *Config) Tree() *fancy.ComponentTree {
	t := fancy.MachineTree(c.Machine.Name)

	settings := fancy.NewComponentTree(fancy.InfoText("settings"))
	settings.AddChild(fmt.Sprintf("tick interval: %s", c.Machine.TickInterval))
	settings.AddChild(fmt.Sprintf("allow reentry: %t", c.Machine.AllowReentry))
	settings.AddChild(fmt.Sprintf("autostart: %t", c.Machine.Autostart))
	t.AddChild(settings.Tree())

	states := fancy.NewComponentTree(fancy.InfoText(fmt.Sprintf("states (%d)", len(c.States))))
	for _, st := range c.States {
		label := fancy.StateText(st.Name)
		if st.Name == c.Machine.Initial {
			label += " " + fancy.ActiveText("(initial)")
		}

		node := fancy.NewComponentTree(label)
		for _, hook := range st.hooks() {
			if hook.ev == nil {
				continue
			}
			node.AddChild(fancy.ScriptText(fmt.Sprintf("%s: %s", hook.name, hook.ev)))
		}
		states.AddChild(node.Tree())
	}
	t.AddChild(states.Tree())

	return t
}

// String renders the configuration as a styled tree.
func (c *Config) String() string {
	return c.Tree().String()
}
