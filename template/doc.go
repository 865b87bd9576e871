// Package template resolves text templates with embedded expressions.
//
// A marker is the text "<?", an expression body without any '?', and "?>".
// Each marker is evaluated with the template context bound to "$" and
// replaced by the displayed result:
//
//	out, err := template.Resolve(ctx,
//		"Hi, my name is <? $.name ?>",
//		map[string]any{"name": "Kar"})
//	// out == "Hi, my name is Kar"
//
// Strings are inserted without quotes, null as "null", numbers in decimal,
// and arrays and objects as compact JSON. A marker whose body is blank
// resolves to the empty string. Identical markers are evaluated once and
// replaced together; inserted text is never scanned again.
//
// Because a body cannot contain '?', expressions that need one, such as the
// ternary operator or a regex like 'https?://', cannot appear in a marker.
// Such text is not recognized and passes through verbatim. Write optional
// regex parts as {0,1} and conditionals as if/else instead.
//
// A [Resolver] adds options such as the extension registry, a compiled
// program cache, logging and metrics.
package template
