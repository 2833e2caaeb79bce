package domain

// AccessRule grants members of any HRGroups access to members of any
// EmployeeGroups.
type AccessRule struct {
	ID             string
	HRGroups       []string
	EmployeeGroups []string
}

// AccessConfig is everything stored about HR access: the structured rules
// plus the two legacy flat lists kept for older readers.
type AccessConfig struct {
	Rules                []AccessRule
	LegacyHRGroups       []string
	LegacyEmployeeGroups []string
}

// User is a directory member as shown to HR.
type User struct {
	ID   string
	Name string
}
