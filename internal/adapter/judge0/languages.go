package judge0

// Language describes one remote judge language entry
type Language struct {
	ID    int
	Label string
}

// languageIDs maps the API-facing language names to remote judge
// language ids. Deployment data: must stay in sync with the language
// set of the Judge0 backend in use.
var languageIDs = map[string]Language{
	"c":          {ID: 50, Label: "C (GCC 9.2.0)"},
	"cpp":        {ID: 54, Label: "C++ (GCC 9.2.0)"},
	"java":       {ID: 62, Label: "Java (OpenJDK 13.0.1)"},
	"javascript": {ID: 63, Label: "JavaScript (Node.js 12.14.0)"},
	"python":     {ID: 71, Label: "Python (3.8.1)"},
	"go":         {ID: 60, Label: "Go (1.13.5)"},
	"rust":       {ID: 73, Label: "Rust (1.40.0)"},
	"typescript": {ID: 74, Label: "TypeScript (3.7.4)"},
}

// LanguageID resolves a language name to its remote judge id
func LanguageID(name string) (int, bool) {
	lang, ok := languageIDs[name]
	return lang.ID, ok
}

// Languages returns the supported language names
func Languages() []string {
	names := make([]string, 0, len(languageIDs))
	for name := range languageIDs {
		names = append(names, name)
	}
	return names
}
