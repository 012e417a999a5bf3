package plan

import "strings"

// DefaultCategory receives files whose extension is not in the table.
const DefaultCategory = "Other"

// ProjectTypePython is the project type with a built-in layout.
const ProjectTypePython = "python_project"

// Tables holds the lookup data the planner classifies with.
type Tables struct {
	// Categories maps a lower-case extension, dot included, to a folder name.
	Categories map[string]string

	// Layouts maps a project type to the subdirectories created, in order,
	// under the project root.
	Layouts map[string][]string
}

func DefaultTables() Tables {
	return Tables{
		Categories: map[string]string{
			".pdf":  "Documents",
			".doc":  "Documents",
			".docx": "Documents",
			".txt":  "Documents",
			".jpg":  "Images",
			".jpeg": "Images",
			".png":  "Images",
			".zip":  "Archives",
			".tar":  "Archives",
			".gz":   "Archives",
			".deb":  "Installers",
		},
		Layouts: map[string][]string{
			ProjectTypePython: {"src", "tests", "docs"},
		},
	}
}

// With returns a copy of t extended by user-supplied entries, which win over
// the built-in ones. Extensions are normalised to lower case with a leading dot.
func (t Tables) With(categories map[string]string, layouts map[string][]string) Tables {
	out := Tables{
		Categories: make(map[string]string, len(t.Categories)+len(categories)),
		Layouts:    make(map[string][]string, len(t.Layouts)+len(layouts)),
	}
	for ext, category := range t.Categories {
		out.Categories[ext] = category
	}
	for ext, category := range categories {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || category == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out.Categories[ext] = category
	}
	for projectType, dirs := range t.Layouts {
		out.Layouts[projectType] = append([]string(nil), dirs...)
	}
	for projectType, dirs := range layouts {
		out.Layouts[projectType] = append([]string(nil), dirs...)
	}
	return out
}

// Category classifies ext case-insensitively.
func (t Tables) Category(ext string) string {
	if category, ok := t.Categories[strings.ToLower(ext)]; ok {
		return category
	}
	return DefaultCategory
}
