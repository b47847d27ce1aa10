package main

import (
	"strings"

	gamedto "mindgym/internal/modules/game/dto"
)

func symbols(items []gamedto.SymbolView) string {
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = s.Color + " " + s.Shape
	}
	return strings.Join(parts, ", ")
}
