package schema

// The compiled-in baselines below are never handed out directly: both
// constructors rebuild the schema on every call so callers can mutate their
// copy without poisoning later runs.

// DefaultNestedSchema returns a fresh copy of the built-in extension table.
func DefaultNestedSchema() *Schema {
	return &Schema{
		Variant: VariantNested,
		Categories: []Category{
			{Name: "Documents & Data", Subcategories: []Subcategory{
				{Name: "Documents", Extensions: []string{".pdf", ".docx", ".txt", ".odt", ".rtf", ".html", ".epub", ".md", ".tex", ".bib"}},
				{Name: "Data (CSV, XML, JSON, etc.)", Extensions: []string{".csv", ".xml", ".json", ".yaml"}},
			}},
			{Name: "Development", Subcategories: []Subcategory{
				{Name: "Project", Extensions: []string{".py", ".cpp", ".java", ".js", ".html", ".css", ".rb", ".go", ".php"}},
			}},
			{Name: "Executables", Subcategories: []Subcategory{
				{Name: "Installers", Extensions: []string{".exe", ".msi"}},
				{Name: "Scripts", Extensions: []string{".bat", ".sh"}},
			}},
			{Name: "Archives", Subcategories: []Subcategory{
				{Name: "Compressed Files", Extensions: []string{".zip", ".rar", ".tar", ".tar.gz", ".7z", ".gz"}},
				{Name: "Backups", Extensions: []string{".bak", ".backup"}},
			}},
			{Name: "Disk Image", Subcategories: []Subcategory{
				{Name: "ISO & Disk Images", Extensions: []string{".iso", ".img"}},
			}},
			{Name: "Presentations", Subcategories: []Subcategory{
				{Name: "PowerPoint Files", Extensions: []string{".pptx", ".key", ".ppt"}},
			}},
			{Name: "Spreadsheets", Subcategories: []Subcategory{
				{Name: "Excel and CSV Files", Extensions: []string{".xls", ".xlsx", ".csv"}},
			}},
			// Catch-all bucket for unrecognized extensions
			{Name: "Other", Subcategories: []Subcategory{}},
		},
	}
}

// DefaultFlatSchema returns a fresh copy of the built-in keyword table.
func DefaultFlatSchema() *Schema {
	return &Schema{
		Variant: VariantFlat,
		Categories: []Category{
			{Name: "University", Keywords: []string{"UOW", "Scanned Documents", "SupportingDocumentation"}},
			{Name: "Personal", Keywords: []string{"invitation", "21st"}},
			{Name: "Gaming", Keywords: []string{"Gaming", "WB Games", "Horizon Forbidden West", "My Games"}},
			{Name: "Miscellaneous", Keywords: []string{}},
			{Name: "Code", Keywords: []string{"Python Scripts", "GitHub", "QtDesignStudio", "Robocode", "Visual Studio 2022"}},
			{Name: "Software", Keywords: []string{"Blackmagic Design", "MAXON", "Custom Office Templates"}},
			{Name: "Backups", Keywords: []string{"Anki Backup"}},
		},
	}
}

// DefaultSchema returns the built-in baseline for the given variant.
func DefaultSchema(variant Variant) *Schema {
	if variant == VariantFlat {
		return DefaultFlatSchema()
	}
	return DefaultNestedSchema()
}
