package model

// Language describes one runtime a challenge can be solved in. JudgeID is the
// identifier the external judge assigns to that runtime, Editor is the
// editor-syntax tag frontends use for highlighting.
type Language struct {
	Name    string `json:"name"`
	JudgeID int    `json:"judge_id"`
	Editor  string `json:"editor"`
}

// SupportedLanguages maps language tags to their judge and editor identifiers.
var SupportedLanguages = map[string]Language{
	"javascript": {Name: "javascript", JudgeID: 63, Editor: "javascript"},
	"python":     {Name: "python", JudgeID: 71, Editor: "python"},
	"cpp":        {Name: "cpp", JudgeID: 54, Editor: "cpp"},
	"java":       {Name: "java", JudgeID: 62, Editor: "java"},
}

// BareFunctionLanguages are the languages whose submissions define a callable
// instead of a whole program; they receive a generated stdin driver.
var BareFunctionLanguages = map[string]bool{
	"python":     true,
	"javascript": true,
}
