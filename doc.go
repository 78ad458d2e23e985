// Package utilcss generates CSS from utility-class tokens.
//
// A token such as "hover:dark:bg-red-500/50" is split into variants and
// modifiers, matched against a rule registry, turned into declarations,
// sanitized and serialized, then wrapped by its variants:
//
//	rules, err := rule.NewBuilder().
//		Add(rule.Static("block", rule.Props("display", "block"))).
//		Build()
//	variants, err := variant.NewBuilder().
//		Add(variant.Suffix("hover", ":hover")).
//		Build()
//
//	gen := utilcss.New(rules, utilcss.WithVariants(variants))
//	css, err := gen.GenerateClass("hover:block")
//	// .hover\:block:hover {
//	//   display: block;
//	// }
//
// Unknown tokens produce no output and no error. Values that fail the
// sanitizer are always reported as *UnsafeValueError; batch calls collect
// them with multierr and still return the CSS of the valid tokens.
//
// The preset package provides a ready-made rule set, theme and variants.
package utilcss
