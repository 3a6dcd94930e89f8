package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Role identifies the author of a conversation message.
type Role int

const (
	// RoleUser represents the human caller.
	RoleUser Role = iota + 1
	// RoleAssistant represents the assistant.
	RoleAssistant
)

// String returns the wire name of the role ("user" or "assistant").
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// SessionKind tags a session with the conversation mode it was created for.
type SessionKind int

const (
	// KindGeneral is a plain conversational session.
	KindGeneral SessionKind = iota + 1
	// KindFileAnalysis is a session created around an uploaded variant file.
	KindFileAnalysis
	// KindNutrition is a diet-planning session.
	KindNutrition
)

// String returns the kind's display name.
func (k SessionKind) String() string {
	switch k {
	case KindGeneral:
		return "general"
	case KindFileAnalysis:
		return "file-analysis"
	case KindNutrition:
		return "nutrition"
	default:
		return "unknown"
	}
}

const (
	// DefaultTitle is the placeholder title assigned to new sessions.
	// A session still carrying it is eligible for automatic naming.
	DefaultTitle = "New Chat"

	// FallbackTitle is used when automatic naming produces an empty result.
	FallbackTitle = "Untitled Chat"
)

// Session represents one ongoing conversation.
// The title is mutable exactly once, when the naming event fires;
// everything else is fixed at creation.
type Session struct {
	Id        ID
	Title     string
	Kind      SessionKind
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is a single entry in a session's ordered log.
// Messages are append-only and never mutated after creation.
type Message struct {
	Id        ID
	SessionId ID
	Role      Role
	Contents  string
	CreatedAt time.Time
}

// Genotype holds one sample's call for a variant.
type Genotype struct {
	Call  string // GT subfield, e.g. "0/1"
	Depth string // DP subfield, "0" when absent
	Raw   string // the unparsed sample value
}

// Variant represents one parsed row of variant-call input.
// Missing optional fields carry the "." sentinel; an unrecognized
// gene is "Unknown".
type Variant struct {
	Chromosome    string
	Position      int
	RSID          string
	Gene          string
	Reference     string
	Alternate     string
	Quality       string
	Filter        string
	Info          string
	Format        string
	Genotypes     map[string]Genotype
	GenotypeStats map[string]int
}

// HasRSID reports whether the variant carries a real identifier
// rather than the "." placeholder.
func (v *Variant) HasRSID() bool {
	return v.RSID != "" && v.RSID != "."
}

// AnnotatedVariant is a Variant enriched with a knowledge-lookup summary.
// Immutable once produced.
type AnnotatedVariant struct {
	Variant
	SearchSummary string
}
