package ports

// Interactor is the terminal surface the organizer talks to. The engine only
// ever sees this port, so batch runs can swap in a silent implementation.
type Interactor interface {
	Prompt(message string, defaultValue string) (string, error)
	Output(message string)
	Warning(message string)
	Error(message string, err error)
}
