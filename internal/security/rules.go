package security

// Rule is a single named detection pattern. Patterns use RE2 syntax and
// are matched case-insensitively.
type Rule struct {
	Name    string
	Pattern string
}

// Group is an ordered list of rules reporting the same Kind.
type Group struct {
	Kind  Kind
	Rules []Rule
}

// DefaultGroups returns the built-in rule table in evaluation order.
func DefaultGroups() []Group {
	return []Group{
		{
			Kind: KindSQL,
			Rules: []Rule{
				{"sql_keyword", `\b(union|select|insert|update|delete|drop|create|alter|exec|execute)\b`},
				{"sql_tautology_numeric", `\b(or|and)\s+\d+\s*=\s*\d+`},
				{"sql_tautology", `\b(or|and)\s+\w+\s*=\s*\w+`},
				{"sql_delimiter", `'|"|;|--|/\*|\*/`},
				{"sql_statement", `\b(union\s+select|select\s+.*\s+from|insert\s+into|update\s+.*\s+set|delete\s+from)\b`},
				{"sql_file_function", `\b(load_file|into\s+outfile|into\s+dumpfile)\b`},
				{"sql_function", `\b(concat|substring|ascii|char|hex|unhex)\b`},
				{"sql_schema_probe", `\b(information_schema|table_name|column_name)\b`},
			},
		},
		{
			Kind: KindXSS,
			Rules: []Rule{
				{"xss_script", `<script\b[^>]*>.*?</script>`},
				{"xss_iframe", `<iframe\b[^>]*>.*?</iframe>`},
				{"xss_object", `<object\b[^>]*>.*?</object>`},
				{"xss_embed", `<embed\b[^>]*>`},
				{"xss_link", `<link\b[^>]*>`},
				{"xss_meta", `<meta\b[^>]*>`},
				{"xss_style", `<style\b[^>]*>.*?</style>`},
				{"xss_img", `<img\b[^>]*>`},
				{"xss_svg", `<svg\b[^>]*>.*?</svg>`},
				{"xss_handler", `\b(javascript|vbscript|onload|onerror)\b`},
				{"xss_angle_bracket", `<|>|&lt;|&gt;`},
			},
		},
		{
			Kind: KindAuthProbe,
			Rules: []Rule{
				{"auth_account", `\b(admin|administrator|root|sa|guest|test|demo)\s*['"=<>]`},
				{"auth_credential", `\b(password|passwd|pwd|secret|key|token)\s*['"=<>]`},
				{"auth_login", `\b(login|logon|signin|signon)\s*['"=<>]`},
				{"auth_scheme", `\b(auth|authentication|authorization)\s*['"=<>]`},
			},
		},
	}
}
