package migrate

// This file implements the XML-corpus fallback tier for the Eldritch
// catalog. The corpus grammar is fixed: expansion names as top-level
// elements, category children naming the card categories, and CARD
// leaves carrying an id attribute plus TOP/MIDDLE/BOTTOM text children.
// Every category is normalized into the same unified card shape.

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/eldermyth/cardvault/internal/sqlite"
	"github.com/eldermyth/cardvault/pkg/types"
)

// Recognized category element names.
var xmlCategories = map[string]bool{
	"LOCATIONS":    true,
	"GATES":        true,
	"EXPEDITIONS":  true,
	"RESEARCH":     true,
	"MYSTIC_RUINS": true,
	"DREAM-QUEST":  true,
	"DISASTER":     true,
	"DEVASTATION":  true,
	"SPECIAL":      true,
}

// xmlCorpus is the document root; expansion elements are dynamic, so
// they decode through the ",any" rule.
type xmlCorpus struct {
	XMLName    xml.Name
	Expansions []xmlExpansion `xml:",any"`
}

// xmlExpansion is one top-level expansion element whose tag is the
// expansion name.
type xmlExpansion struct {
	XMLName    xml.Name
	Categories []xmlCategory `xml:",any"`
}

// xmlCategory is one category child. RESEARCH carries a shared header
// set applied to every card beneath it; other categories either head
// their sections inline or have no headers at all.
type xmlCategory struct {
	XMLName xml.Name
	Headers []string  `xml:"HEADER"`
	Cards   []xmlCard `xml:"CARD"`
}

// xmlCard is a CARD leaf.
type xmlCard struct {
	ID     string     `xml:"id,attr"`
	Region string     `xml:"region,attr"`
	Top    xmlSection `xml:"TOP"`
	Middle xmlSection `xml:"MIDDLE"`
	Bottom xmlSection `xml:"BOTTOM"`
}

// xmlSection is one section child with an optional inline header.
type xmlSection struct {
	Header string `xml:"header,attr"`
	Text   string `xml:",chardata"`
}

// importEldritchXML parses the bundled corpus at path and inserts the
// normalized cards. Returns cards inserted and rows skipped.
func importEldritchXML(path string, dst *sqlite.Store) (int64, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, types.ErrNoLegacySource
	}

	var corpus xmlCorpus
	if err := xml.Unmarshal(data, &corpus); err != nil {
		return 0, 0, fmt.Errorf("parsing XML corpus: %w", err)
	}

	skipped := 0
	var cards []*types.Card
	for _, exp := range corpus.Expansions {
		expansion := CanonicalExpansionName(exp.XMLName.Local)
		if expansion == "" {
			skipped++
			continue
		}
		if _, err := dst.GetOrCreateExpansion(types.GameEldritch, "", expansion, ""); err != nil {
			skipped++
			continue
		}

		for _, cat := range exp.Categories {
			category := cat.XMLName.Local
			if !xmlCategories[category] {
				skipped++
				continue
			}
			sharedTop, sharedMiddle, sharedBottom := sharedHeaders(cat.Headers)
			for _, raw := range cat.Cards {
				if raw.ID == "" {
					skipped++
					continue
				}
				card := normalizeXMLCard(raw, category, expansion)
				if card.TopHeader == "" {
					card.TopHeader = sharedTop
				}
				if card.MiddleHeader == "" {
					card.MiddleHeader = sharedMiddle
				}
				if card.BottomHeader == "" {
					card.BottomHeader = sharedBottom
				}
				cards = append(cards, card)
			}
		}
	}

	report, err := dst.InsertCards(cards)
	if err != nil {
		return 0, 0, fmt.Errorf("inserting XML cards: %w", err)
	}
	return int64(report.Inserted), skipped + report.Failed, nil
}

// normalizeXMLCard maps one CARD leaf into the unified shape. The deck
// region is the explicit region attribute when present, else the
// category name.
func normalizeXMLCard(raw xmlCard, category, expansion string) *types.Card {
	region := strings.TrimSpace(raw.Region)
	if region == "" {
		region = category
	}
	return &types.Card{
		GameType:     types.GameEldritch,
		CardID:       strings.TrimSpace(raw.ID),
		Expansion:    expansion,
		Encountered:  types.EncounteredNone,
		Region:       region,
		TopHeader:    strings.TrimSpace(raw.Top.Header),
		TopText:      strings.TrimSpace(raw.Top.Text),
		MiddleHeader: strings.TrimSpace(raw.Middle.Header),
		MiddleText:   strings.TrimSpace(raw.Middle.Text),
		BottomHeader: strings.TrimSpace(raw.Bottom.Header),
		BottomText:   strings.TrimSpace(raw.Bottom.Text),
	}
}

// sharedHeaders spreads a category-level header set across the three
// sections. RESEARCH declares one header set shared by all its cards.
func sharedHeaders(headers []string) (top, middle, bottom string) {
	if len(headers) > 0 {
		top = strings.TrimSpace(headers[0])
	}
	if len(headers) > 1 {
		middle = strings.TrimSpace(headers[1])
	}
	if len(headers) > 2 {
		bottom = strings.TrimSpace(headers[2])
	}
	return top, middle, bottom
}
