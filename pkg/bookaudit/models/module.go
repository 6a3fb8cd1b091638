package models

import "strconv"

// EmptyModulePlaceholder is recorded in ModuleCode for modules with no code.
const EmptyModulePlaceholder = "(Empty Module)"

// ComponentType is the VBA component type code as reported by the host
// application's extensibility model.
type ComponentType int

const (
	// TypeStdModule is a standard procedural module.
	TypeStdModule ComponentType = 1
	// TypeClassModule is a class module.
	TypeClassModule ComponentType = 2
	// TypeMSForm is a UserForm code-behind module.
	TypeMSForm ComponentType = 3
	// TypeDocument is a document module (workbook or worksheet code-behind).
	TypeDocument ComponentType = 100
)

func (t ComponentType) String() string {
	switch t {
	case TypeStdModule:
		return "Standard Module"
	case TypeClassModule:
		return "Class Module"
	case TypeMSForm:
		return "UserForm"
	case TypeDocument:
		return "Document Module"
	default:
		return "Unknown (" + strconv.Itoa(int(t)) + ")"
	}
}

// ModuleInfo represents a single VBA project component.
type ModuleInfo struct {
	// Name is the component name.
	Name string `json:"name"`
	// Type is the component type code (1=Standard, 2=Class, 3=Form, 100=Document).
	Type int `json:"type"`
	// CodeLines is the number of code lines in the component.
	CodeLines int `json:"code_lines"`
}
