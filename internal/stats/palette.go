package stats

// CategoryColors are assigned by category display position.
var CategoryColors = []string{
	"#00d4aa",
	"#ff6b9d",
	"#7c5cff",
	"#00c9a7",
	"#ff8a5c",
	"#5cb8ff",
	"#c77dff",
	"#4ecdc4",
	"#ff6b6b",
	"#95e679",
}

// SubcategoryColors are assigned by position in a category's
// ["General", ...subcategories] list.
var SubcategoryColors = []string{
	"#00d4aa",
	"#ff6b9d",
	"#7c5cff",
	"#00c9a7",
	"#ff8a5c",
	"#5cb8ff",
	"#c77dff",
	"#4ecdc4",
	"#ff6b6b",
	"#95e679",
	"#ffd93d",
	"#6bcbff",
	"#ff85a2",
	"#a8e6cf",
	"#b388ff",
}

// CategoryColor returns the palette colour for the category at index i.
func CategoryColor(i int) string {
	return CategoryColors[i%len(CategoryColors)]
}

// SubcategoryColor returns the palette colour for the subcategory at index i.
func SubcategoryColor(i int) string {
	return SubcategoryColors[i%len(SubcategoryColors)]
}
