package distill

import "github.com/mvp-joe/distill/internal/language"

// normalizeExport maps an extractor's raw export into the canonical
// record shape: unrecognized kinds become const, missing visibility
// becomes public, missing line numbers stay 0.
func normalizeExport(raw language.RawExport) Export {
	exp := Export{
		Name:       raw.Name,
		Kind:       normalizeKind(raw.Kind),
		Signature:  raw.Signature,
		Visibility: normalizeVisibility(raw.Visibility),
		Location: SourceLocation{
			StartLine: clampLine(raw.StartLine),
			EndLine:   clampLine(raw.EndLine),
		},
	}

	for _, m := range raw.Members {
		exp.Members = append(exp.Members, Member{
			Name:      m.Name,
			Signature: m.Signature,
			Kind:      normalizeMemberKind(m.Kind),
		})
	}

	return exp
}

// normalizeKind folds free-text kinds into the canonical set. The const
// fallback for unrecognized kinds is long-standing behavior; changing it
// would silently reshape downstream consumers' view of the API surface.
func normalizeKind(kind string) string {
	switch kind {
	case KindFunction, KindClass, KindInterface, KindConst, KindType, KindEnum:
		return kind
	default:
		return KindConst
	}
}

func normalizeVisibility(visibility string) string {
	switch visibility {
	case VisibilityPublic, VisibilityPrivate, VisibilityProtected:
		return visibility
	default:
		return VisibilityPublic
	}
}

// normalizeMemberKind folds constructors and accessors into method;
// anything unrecognized is treated as a property.
func normalizeMemberKind(kind string) string {
	switch kind {
	case MemberMethod, "constructor", "getter", "setter":
		return MemberMethod
	case MemberProperty:
		return MemberProperty
	default:
		return MemberProperty
	}
}

func clampLine(line int) int {
	if line < 0 {
		return 0
	}
	return line
}
