package telegram

const (
	msgUnknownCommand = "hmm i don't know that command, try /help"
	msgNotRegistered  = "you're not registered yet, send /register or just say hi 👋"
	msgGeneric        = "something went wrong on my side, try again in a bit"

	usageCreateTask = "usage: /create_task <name> | <time, e.g. 07:30 or morning> | [description]"
	usageEditTask   = "usage: /edit_task <task_id> name=<name> time=<HH:MM> description=<text>"
	usageTaskID     = "usage: /%s <task_id>"
	usageComplete   = "send a photo with the caption /complete <task_id>"
	usageTimezone   = "usage: /timezone <IANA zone>, e.g. /timezone America/New_York"
)

const (
	defaultHistoryDays = 7
	maxHistoryDays     = 90
)

const commandList = `commands:
/start - start over and set up a new habit
/register [timezone] - create your profile
/profile - your profile and remaining AI calls
/timezone <zone> - change your timezone
/create_task <name> | <time> | [description] - add a daily task
/tasks - list your tasks
/edit_task <id> name=... time=... description=...
/toggle_task <id> - pause or resume reminders
/delete_task <id> - delete a task for good
/complete <id> - send as a photo caption to log proof
/streaks - your streaks
/stats [id] - 30 day statistics
/history [days|since] - recent completions
/next - upcoming reminders`
