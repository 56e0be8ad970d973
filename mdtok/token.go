package mdtok

import (
	"fmt"
	"io"
)

// TokenName labels an Enter/Exit span. It is a closed, finite enumeration:
// whole constructs (Paragraph, BlockQuote, HeadingAtx, ...) and their
// internal sub-spans (HeadingAtxSequence, LabelMarker, ...). Some names
// are declared but never emitted (LabelImage, LabelLink). Others remain in
// a final, resolved event list: Data carries literal text, an
// AttentionSequence left unmatched by the attention resolver stays as
// literal text, and LabelEnd stays as a zero-width anchor.
type TokenName int

// TokenName values. Grouped by construct, matching the doc-comment groups
// in the upstream tokenizer's TokenType enum.
const (
	noToken TokenName = iota

	// Containers.
	Document
	BlockQuote
	BlockQuotePrefix
	BlockQuoteMarker
	BlockQuotePrefixWhitespace
	ListOrdered
	ListUnordered
	ListItem
	ListItemPrefix
	ListItemMarker
	ListItemPrefixWhitespace
	ListItemValue

	// Flow leaves.
	BlankLineEnding
	LineEnding
	SpaceOrTab
	Paragraph
	ThematicBreak
	ThematicBreakSequence
	HeadingAtx
	HeadingAtxSequence
	HeadingAtxText
	HeadingSetext
	HeadingSetextText
	HeadingSetextUnderline
	CodeIndented
	CodeFlowChunk
	CodeFenced
	CodeFencedFence
	CodeFencedFenceSequence
	CodeFencedFenceInfo
	CodeFencedFenceMeta
	HTMLFlow
	HTMLFlowData

	// Definitions.
	Definition
	DefinitionMarker
	DefinitionLabel
	DefinitionLabelMarker
	DefinitionLabelString
	DefinitionDestination
	DefinitionDestinationLiteral
	DefinitionDestinationLiteralMarker
	DefinitionDestinationRaw
	DefinitionDestinationString
	DefinitionTitle
	DefinitionTitleMarker
	DefinitionTitleString

	// Text / inline.
	Data
	CharacterEscape
	CharacterEscapeMarker
	CharacterEscapeValue
	CharacterReference
	CharacterReferenceMarker
	CharacterReferenceMarkerNumeric
	CharacterReferenceMarkerHexadecimal
	CharacterReferenceMarkerSemi
	CharacterReferenceValue
	CodeText
	CodeTextSequence
	CodeTextData
	CodeTextLineEnding
	HardBreakEscape
	HardBreakEscapeMarker
	HardBreakTrailing
	HardBreakTrailingSpace
	HTMLText
	HTMLTextData
	Autolink
	AutolinkMarker
	AutolinkProtocol
	AutolinkEmail

	// Attention (sequences paired into Emphasis/Strong by the attention resolver).
	AttentionSequence
	Emphasis
	EmphasisSequence
	EmphasisText
	Strong
	StrongSequence
	StrongText

	// Labels / media (paired into Link/Image by the label-end resolver).
	LabelImage
	LabelImageMarker
	LabelLink
	Label
	LabelMarker
	LabelText
	LabelEnd
	Link
	Image
	Resource
	ResourceMarker
	ResourceDestination
	ResourceDestinationLiteral
	ResourceDestinationLiteralMarker
	ResourceDestinationRaw
	ResourceDestinationString
	ResourceTitle
	ResourceTitleMarker
	ResourceTitleString
	Reference
	ReferenceMarker
	ReferenceString

	numTokenNames
)

var tokenNames = [numTokenNames]string{
	noToken:                             "None",
	Document:                            "Document",
	BlockQuote:                          "BlockQuote",
	BlockQuotePrefix:                    "BlockQuotePrefix",
	BlockQuoteMarker:                    "BlockQuoteMarker",
	BlockQuotePrefixWhitespace:          "BlockQuotePrefixWhitespace",
	ListOrdered:                         "ListOrdered",
	ListUnordered:                       "ListUnordered",
	ListItem:                            "ListItem",
	ListItemPrefix:                      "ListItemPrefix",
	ListItemMarker:                      "ListItemMarker",
	ListItemPrefixWhitespace:            "ListItemPrefixWhitespace",
	ListItemValue:                       "ListItemValue",
	BlankLineEnding:                     "BlankLineEnding",
	LineEnding:                          "LineEnding",
	SpaceOrTab:                          "SpaceOrTab",
	Paragraph:                           "Paragraph",
	ThematicBreak:                       "ThematicBreak",
	ThematicBreakSequence:               "ThematicBreakSequence",
	HeadingAtx:                          "HeadingAtx",
	HeadingAtxSequence:                  "HeadingAtxSequence",
	HeadingAtxText:                      "HeadingAtxText",
	HeadingSetext:                       "HeadingSetext",
	HeadingSetextText:                   "HeadingSetextText",
	HeadingSetextUnderline:              "HeadingSetextUnderline",
	CodeIndented:                        "CodeIndented",
	CodeFlowChunk:                       "CodeFlowChunk",
	CodeFenced:                          "CodeFenced",
	CodeFencedFence:                     "CodeFencedFence",
	CodeFencedFenceSequence:             "CodeFencedFenceSequence",
	CodeFencedFenceInfo:                 "CodeFencedFenceInfo",
	CodeFencedFenceMeta:                 "CodeFencedFenceMeta",
	HTMLFlow:                            "HTMLFlow",
	HTMLFlowData:                        "HTMLFlowData",
	Definition:                          "Definition",
	DefinitionMarker:                    "DefinitionMarker",
	DefinitionLabel:                     "DefinitionLabel",
	DefinitionLabelMarker:               "DefinitionLabelMarker",
	DefinitionLabelString:               "DefinitionLabelString",
	DefinitionDestination:               "DefinitionDestination",
	DefinitionDestinationLiteral:        "DefinitionDestinationLiteral",
	DefinitionDestinationLiteralMarker:  "DefinitionDestinationLiteralMarker",
	DefinitionDestinationRaw:            "DefinitionDestinationRaw",
	DefinitionDestinationString:         "DefinitionDestinationString",
	DefinitionTitle:                     "DefinitionTitle",
	DefinitionTitleMarker:               "DefinitionTitleMarker",
	DefinitionTitleString:               "DefinitionTitleString",
	Data:                                "Data",
	CharacterEscape:                     "CharacterEscape",
	CharacterEscapeMarker:               "CharacterEscapeMarker",
	CharacterEscapeValue:                "CharacterEscapeValue",
	CharacterReference:                  "CharacterReference",
	CharacterReferenceMarker:            "CharacterReferenceMarker",
	CharacterReferenceMarkerNumeric:     "CharacterReferenceMarkerNumeric",
	CharacterReferenceMarkerHexadecimal: "CharacterReferenceMarkerHexadecimal",
	CharacterReferenceMarkerSemi:        "CharacterReferenceMarkerSemi",
	CharacterReferenceValue:             "CharacterReferenceValue",
	CodeText:                            "CodeText",
	CodeTextSequence:                    "CodeTextSequence",
	CodeTextData:                        "CodeTextData",
	CodeTextLineEnding:                  "CodeTextLineEnding",
	HardBreakEscape:                     "HardBreakEscape",
	HardBreakEscapeMarker:               "HardBreakEscapeMarker",
	HardBreakTrailing:                   "HardBreakTrailing",
	HardBreakTrailingSpace:              "HardBreakTrailingSpace",
	HTMLText:                            "HTMLText",
	HTMLTextData:                        "HTMLTextData",
	Autolink:                            "Autolink",
	AutolinkMarker:                      "AutolinkMarker",
	AutolinkProtocol:                    "AutolinkProtocol",
	AutolinkEmail:                       "AutolinkEmail",
	AttentionSequence:                   "AttentionSequence",
	Emphasis:                            "Emphasis",
	EmphasisSequence:                    "EmphasisSequence",
	EmphasisText:                        "EmphasisText",
	Strong:                              "Strong",
	StrongSequence:                      "StrongSequence",
	StrongText:                          "StrongText",
	LabelImage:                          "LabelImage",
	LabelImageMarker:                    "LabelImageMarker",
	LabelLink:                           "LabelLink",
	Label:                               "Label",
	LabelMarker:                         "LabelMarker",
	LabelText:                           "LabelText",
	LabelEnd:                            "LabelEnd",
	Link:                                "Link",
	Image:                               "Image",
	Resource:                            "Resource",
	ResourceMarker:                      "ResourceMarker",
	ResourceDestination:                 "ResourceDestination",
	ResourceDestinationLiteral:          "ResourceDestinationLiteral",
	ResourceDestinationLiteralMarker:    "ResourceDestinationLiteralMarker",
	ResourceDestinationRaw:              "ResourceDestinationRaw",
	ResourceDestinationString:           "ResourceDestinationString",
	ResourceTitle:                       "ResourceTitle",
	ResourceTitleMarker:                 "ResourceTitleMarker",
	ResourceTitleString:                 "ResourceTitleString",
	Reference:                           "Reference",
	ReferenceMarker:                     "ReferenceMarker",
	ReferenceString:                     "ReferenceString",
}

// Format writes a type string representing the receiver, matching the
// improved fmt.Printf display convention used throughout this module.
func (n TokenName) Format(f fmt.State, _ rune) {
	if n >= 0 && n < numTokenNames && tokenNames[n] != "" {
		io.WriteString(f, tokenNames[n])
		return
	}
	fmt.Fprintf(f, "InvalidTokenName%d", int(n))
}

func (n TokenName) String() string { return fmt.Sprint(n) }

// isContainer reports whether name is a container construct (one that can
// hold other blocks, per spec.md's Container data model).
func isContainer(n TokenName) bool {
	switch n {
	case Document, BlockQuote, ListOrdered, ListUnordered, ListItem:
		return true
	default:
		return false
	}
}
