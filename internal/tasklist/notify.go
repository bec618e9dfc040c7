package tasklist

// Level is the severity of a notification.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Fixed user-facing messages. Server detail never reaches these.
const (
	MsgDeleted      = "Task Deleted Successfully"
	MsgDeleteFailed = "Error Deleting Task"
	MsgUpdated      = "Task Updated Successfully"
	MsgUpdateFailed = "Error Updating Task"
)

// Notification is a transient message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Notifier receives notifications when a mutation settles.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}
