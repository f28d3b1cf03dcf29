package models

// Modules is the static module table, in navigation order
var Modules = []Module{
	{
		Name:     "professors",
		Path:     "/professors",
		Title:    "Professors",
		Singular: "Professor",
		Fields: []Field{
			{Name: "prof_id", Label: "Professor ID", Column: "Professor ID", Kind: InputText},
			{Name: "prof_name", Label: "Professor Name", Column: "Name", Kind: InputText},
			{Name: "dept_id", Label: "Department ID", Column: "Department ID", Kind: InputText},
			{Name: "experience", Label: "Experience (years)", Column: "Experience", Kind: InputText},
		},
	},
	{
		Name:     "students",
		Path:     "/students",
		Title:    "Students",
		Singular: "Student",
		Fields: []Field{
			{Name: "student_id", Label: "Student ID", Column: "Student ID", Kind: InputText},
			{Name: "name", Label: "Name", Column: "Name", Kind: InputText},
			{Name: "year", Label: "Year", Column: "Year", Kind: InputText},
			{Name: "major", Label: "Major", Column: "Major", Kind: InputText},
		},
	},
	{
		Name:     "courses",
		Path:     "/courses",
		Title:    "Courses",
		Singular: "Course",
		Fields: []Field{
			{Name: "course_id", Label: "Course ID", Column: "Course ID", Kind: InputText},
			{Name: "course_name", Label: "Course Name", Column: "Name", Kind: InputText},
			{Name: "dept_id", Label: "Department ID", Column: "Department ID", Kind: InputText},
			{Name: "credits", Label: "Credits", Column: "Credits", Kind: InputText},
		},
	},
	{
		Name:     "degrees",
		Path:     "/degrees",
		Title:    "Degrees",
		Singular: "Degree",
		Fields: []Field{
			{Name: "degree_id", Label: "Degree ID", Column: "Degree ID", Kind: InputText},
			{Name: "degree_name", Label: "Degree Name", Column: "Name", Kind: InputText},
			{Name: "duration", Label: "Duration (years)", Column: "Duration", Kind: InputText},
		},
	},
	{
		Name:     "departments",
		Path:     "/departments",
		Title:    "Departments",
		Singular: "Department",
		Fields: []Field{
			{Name: "dept_id", Label: "Department ID", Column: "Department ID", Kind: InputText},
			{Name: "dept_name", Label: "Department Name", Column: "Name", Kind: InputText},
			{Name: "location", Label: "Location", Column: "Location", Kind: InputText},
		},
	},
}

// FindModule looks a module up by name
func FindModule(name string) (Module, bool) {
	for _, m := range Modules {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}
