package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                Code = 1000
	LexEndOfFileUnexpected Code = 1001

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Ошибки проекта / конфигурации
	PrjInfo            Code = 5000
	PrjUnknownLanguage Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexEndOfFileUnexpected: "Unexpected end of file",
	IOLoadFileError:        "I/O load file error",
	PrjInfo:                "Project information",
	PrjUnknownLanguage:     "No language definition for file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
