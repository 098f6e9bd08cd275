package format

import "github.com/mvp-joe/distill/internal/distill"

// filterRecord applies the option toggles to one record without touching
// the original: private symbols drop unless requested, imports drop when
// excluded.
func filterRecord(rec distill.Record, opts Options) distill.Record {
	out := rec
	out.Exports = make([]distill.Export, 0, len(rec.Exports))
	for _, exp := range rec.Exports {
		if !opts.IncludePrivate && exp.Visibility != distill.VisibilityPublic {
			continue
		}
		out.Exports = append(out.Exports, exp)
	}
	if !opts.IncludeImports {
		out.Imports = []string{}
	}
	return out
}

// filterAPIs applies filterRecord across the API list.
func filterAPIs(apis []distill.Record, opts Options) []distill.Record {
	out := make([]distill.Record, 0, len(apis))
	for _, rec := range apis {
		out = append(out, filterRecord(rec, opts))
	}
	return out
}

// groupByKind buckets exports by their canonical kind, preserving order
// within each bucket.
func groupByKind(exports []distill.Export) map[string][]distill.Export {
	groups := make(map[string][]distill.Export)
	for _, exp := range exports {
		groups[exp.Kind] = append(groups[exp.Kind], exp)
	}
	return groups
}

// kindOrder is the rendering order for grouped output.
var kindOrder = []string{
	distill.KindClass,
	distill.KindInterface,
	distill.KindFunction,
	distill.KindType,
	distill.KindEnum,
	distill.KindConst,
}
