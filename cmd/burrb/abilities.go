package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magoocas/life-of-a-burrb/internal/sim"
)

var abilitiesCmd = &cobra.Command{
	Use:   "abilities",
	Short: "Show the ability catalog",
	Long: `Shows every ability the shop sells, grouped by the currency it costs.

Chips come from city npcs and soda cans; the four biome currencies come
from collecting in their corner of the map.`,
	Run: runAbilities,
}

func runAbilities(cmd *cobra.Command, args []string) {
	fmt.Println("Ability catalog:")

	// Calculate column widths across the whole catalog
	maxNameLen := 4 // "Name" header
	for i := 0; i < sim.AbilityCount; i++ {
		def := sim.Def(sim.AbilityID(i))
		if len(def.Name) > maxNameLen {
			maxNameLen = len(def.Name)
		}
	}

	for c := sim.Currency(0); c < sim.Currency(sim.CurrencyCount); c++ {
		ids := sim.ShopTab(c)
		if len(ids) == 0 {
			continue
		}

		fmt.Println()
		fmt.Printf("%s:\n", c)
		fmt.Printf("  %-4s  %-*s  %-5s  %-8s  %s\n", "Key", maxNameLen, "Name", "Cost", "Kind", "Effect")
		fmt.Printf("  %-4s  %-*s  %-5s  %-8s  %s\n", "---", maxNameLen, "----", "----", "----", "------")

		for _, id := range ids {
			def := sim.Def(id)
			fmt.Printf("  %-4s  %-*s  %-5d  %-8s  %s\n",
				def.Key, maxNameLen, def.Name, def.Cost, def.Kind, def.Blurb)
		}
	}

	fmt.Println()
	fmt.Println("Open the shop in a session with Tab to buy abilities.")
}
