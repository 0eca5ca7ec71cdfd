package scaffold

// CommandAdapter adapts a base command name for the host operating system's
// executable-resolution rules (npm shims are .cmd batch files on Windows).
type CommandAdapter func(base string) string

// InstructionsFor resolves the argv needed to invoke the external scaffolding
// tool for a project type and target path, using the platform's command
// adaptation.
func InstructionsFor(t ProjectType, targetPath string) ([]string, error) {
	return instructionsFor(t, targetPath, platformCommand)
}

func instructionsFor(t ProjectType, targetPath string, adapt CommandAdapter) ([]string, error) {
	switch t {
	case TypeCreateReactApp:
		return []string{adapt("npx"), "create-react-app", targetPath}, nil
	case TypeGatsby:
		return []string{adapt("npx"), "gatsby", "new", targetPath}, nil
	default:
		return nil, &UnrecognizedTypeError{Type: t}
	}
}

// UnrecognizedTypeError reports a project type outside the closed enum.
// It unwraps to ErrUnrecognizedProjectType.
type UnrecognizedTypeError struct {
	Type ProjectType
}

func (e *UnrecognizedTypeError) Error() string {
	return "unrecognized project type: " + string(e.Type)
}

func (e *UnrecognizedTypeError) Unwrap() error { return ErrUnrecognizedProjectType }
