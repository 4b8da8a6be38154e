// Package all registers every output format.
package all

import (
	_ "github.com/FocuswithJustin/Compendium/internal/formats/html"
	_ "github.com/FocuswithJustin/Compendium/internal/formats/markdown"
	_ "github.com/FocuswithJustin/Compendium/internal/formats/script"
	_ "github.com/FocuswithJustin/Compendium/internal/formats/terminal"
	_ "github.com/FocuswithJustin/Compendium/internal/formats/text"
)
