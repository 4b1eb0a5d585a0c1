package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"boosterdex/models"
	"boosterdex/services"
)

func main() {
	files, err := filepath.Glob("./cards/*.json")
	if err != nil {
		fmt.Println("error: cannot read ./cards:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Println("no .json card files found in ./cards")
		return
	}

	table := services.DefaultRarityTable()
	if err := table.Validate(); err != nil {
		fmt.Println("rarity table:", err)
		os.Exit(1)
	}

	exitCode := 0
	seenNames := map[string]string{}
	rarityCounts := map[models.Rarity]int{}

	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			fmt.Printf("%s: read error: %v\n", f, err)
			exitCode = 1
			continue
		}

		var file services.CardFile
		if err := json.Unmarshal(data, &file); err != nil {
			fmt.Printf("%s: invalid JSON: %v\n", f, err)
			exitCode = 1
			continue
		}

		bad := 0
		for i, card := range file.Cards {
			if card.Name == "" {
				fmt.Printf("%s: card %d: missing name\n", f, i)
				bad++
				continue
			}
			if prev, dup := seenNames[card.Name]; dup {
				fmt.Printf("%s: card %q: duplicate of entry in %s\n", f, card.Name, prev)
				bad++
			}
			seenNames[card.Name] = f

			if !card.Rarity.Valid() {
				fmt.Printf("%s: card %q: unknown rarity %q\n", f, card.Name, card.Rarity)
				bad++
				continue
			}
			rarityCounts[card.Rarity]++
		}

		if bad == 0 {
			fmt.Printf("%s: OK (%d cards)\n", f, len(file.Cards))
		} else {
			exitCode = 1
		}
	}

	// Every tier the probability table can resolve needs at least one card,
	// otherwise open_booster can hit an empty pool at runtime.
	for _, w := range table {
		if w.Probability > 0 && rarityCounts[w.Rarity] == 0 {
			fmt.Printf("rarity %q: no cards in any set but probability is %.2f\n", w.Rarity, w.Probability)
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}
