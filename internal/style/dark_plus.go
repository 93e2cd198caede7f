package style

import "github.com/alecthomas/chroma/v2"

// DarkPlusName is the registry name of the project's custom style.
const DarkPlusName = "dark_plus"

// DarkPlusDefinition is a highlighting scheme based on VSCode's builtin
// "Dark Plus" theme.
func DarkPlusDefinition() Definition {
	return Definition{
		BackgroundColor:           "#1E1E1E",
		HighlightColor:            "#ff0000",
		LineNumberColor:           "#FCFCFC",
		LineNumberBackgroundColor: "#282828",
		Tokens: map[string]string{
			"Text":                "#FEFEFE",
			"Comment.Single":      "#5E9955",
			"Comment.Multiline":   "#5E9955",
			"Comment.Preproc":     "#B369BF",
			"Other":               "#FEFEFE",
			"Keyword":             "#499CD6",
			"Keyword.Declaration": "#C586C0",
			"Keyword.Namespace":   "#B369BF",
			"Keyword.Type":        "#48C999",
			"Name":                "#FEFEFE",
			"Name.Builtin":        "#EAEB82",
			"Name.Builtin.Pseudo": "#499DC7",
			"Name.Class":          "#48C999",
			"Name.Decorator":      "#EAEB82",
			"Name.Exception":      "#48C999",
			"Name.Attribute":      "#569CD6",
			"Name.Variable":       "#9CDCFE",
			"Name.Variable.Magic": "#EAEB82",
			"Name.Function":       "#EAEB82",
			"Name.Function.Magic": "#EAEB82",
			"Literal":             "#AC4C1E",
			"String":              "#B88451",
			"String.Escape":       "#DEA868",
			"String.Affix":        "#499DC7",
			"Number":              "#B3D495",
			"Operator":            "#FEFEFE",
			"Operator.Word":       "#499DC7",
			"Generic.Output":      "#F4DA8B",
			"Generic.Prompt":      "#99FFA2",
			"Generic.Traceback":   "#FF0909",
			"Generic.Error":       "#FF0909",
			"Punctuation":         "#FEFEFE",
		},
	}
}

// DarkPlus builds the dark_plus style. The definition is static, so a
// failure here is a programming error.
func DarkPlus() *chroma.Style {
	s, err := FromDefinition(DarkPlusName, DarkPlusDefinition())
	if err != nil {
		panic(err)
	}
	return s
}
