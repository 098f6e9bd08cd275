package distill

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvp-joe/distill/internal/language"
)

// Test Plan for Normalization:
// - Canonical kinds pass through unchanged
// - Unrecognized kinds (including "variable") fall back to const
// - Missing or unknown visibility defaults to public
// - constructor/getter/setter member kinds fold into method
// - Unknown member kinds fold into property
// - Negative line numbers clamp to 0

func TestNormalizeKind_CanonicalPassThrough(t *testing.T) {
	// Test: every canonical kind survives normalization
	for _, kind := range []string{KindFunction, KindClass, KindInterface, KindConst, KindType, KindEnum} {
		assert.Equal(t, kind, normalizeKind(kind))
	}
}

func TestNormalizeKind_FallbackToConst(t *testing.T) {
	// Test: unrecognized kinds normalize to const
	assert.Equal(t, KindConst, normalizeKind("variable"))
	assert.Equal(t, KindConst, normalizeKind("macro"))
	assert.Equal(t, KindConst, normalizeKind(""))
}

func TestNormalizeVisibility_DefaultsToPublic(t *testing.T) {
	// Test: unknown or missing visibility becomes public
	assert.Equal(t, VisibilityPublic, normalizeVisibility(""))
	assert.Equal(t, VisibilityPublic, normalizeVisibility("internal"))
	assert.Equal(t, VisibilityPrivate, normalizeVisibility("private"))
	assert.Equal(t, VisibilityProtected, normalizeVisibility("protected"))
}

func TestNormalizeMemberKind_Folding(t *testing.T) {
	// Test: constructors and accessors become method, everything else property
	assert.Equal(t, MemberMethod, normalizeMemberKind("method"))
	assert.Equal(t, MemberMethod, normalizeMemberKind("constructor"))
	assert.Equal(t, MemberMethod, normalizeMemberKind("getter"))
	assert.Equal(t, MemberMethod, normalizeMemberKind("setter"))
	assert.Equal(t, MemberProperty, normalizeMemberKind("property"))
	assert.Equal(t, MemberProperty, normalizeMemberKind("field"))
	assert.Equal(t, MemberProperty, normalizeMemberKind(""))
}

func TestNormalizeExport_FullShape(t *testing.T) {
	// Test: raw export maps to the canonical record shape
	raw := language.RawExport{
		Name:      "User",
		Kind:      "class",
		Signature: "class User",
		StartLine: -3,
		EndLine:   12,
		Members: []language.RawMember{
			{Name: "constructor", Signature: "constructor(name)", Kind: "constructor"},
			{Name: "name", Signature: "name: string", Kind: "field"},
		},
	}

	exp := normalizeExport(raw)
	assert.Equal(t, "User", exp.Name)
	assert.Equal(t, KindClass, exp.Kind)
	assert.Equal(t, VisibilityPublic, exp.Visibility)
	assert.Equal(t, 0, exp.Location.StartLine)
	assert.Equal(t, 12, exp.Location.EndLine)
	assert.Equal(t, MemberMethod, exp.Members[0].Kind)
	assert.Equal(t, MemberProperty, exp.Members[1].Kind)
}
