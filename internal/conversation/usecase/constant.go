package usecase

const (
	msgApology = "yo something went wrong on my end, try again in a sec 🤖"

	msgBadName = "bruh that's not a name\ntry again with something that's actually a name lol"

	msgBeSpecific = "ok i see the vision but we need to get specific\n\n" +
		"vague goals = vague results\n\n" +
		"tell me something concrete you want to do regularly\n" +
		`like "work out 3 times a week" or "read every night"`

	msgClarify = "hmm not sure what you mean by that\n\n" +
		"try being more specific like:\n" +
		"• \"work out 3 times a week\"\n" +
		"• \"read every night at 9pm\"\n" +
		"• \"meditate daily in the morning\"\n\n" +
		"what did you have in mind?"

	msgBadTime = "hmm that doesn't look like a time to me\n\n" +
		"try something like:\n" +
		"• 7:30 AM\n" +
		"• morning\n" +
		"• after work\n" +
		"• 6 PM"

	msgAdjust = "no worries, let's adjust it\nwhat would you like to change?"

	msgYesOrNo = "just need a yes or no fam\ndoes this schedule work for you?"

	msgNothingPending = "something went wrong, no tasks to create\ntell me the habit again?"

	msgPaymentUnclear = "so... you down for $5/month or nah?\njust need a yes or no"

	msgTaskListHint = "lemme check what you got going...\n" +
		"use /tasks to see everything\n" +
		"or just tell me about new habits you want to build!"

	msgNotSure = "not sure what you're asking for\n" +
		"just tell me about habits you want to build\n" +
		`or say "help" if you're lost`

	previewHeader = "bet! so here's what im setting up for you:\n"
	previewFooter = "\nill hit you up each time to make sure you actually show up\n" +
		"and not just snooze your way to failure like most people lol\n\n" +
		"this look good? (yes/no)"

	trustIntentAbove = 0.7
)

var (
	helpWords = []string{"help", "commands", "what can you do"}
	listWords = []string{"tasks", "list", "show", "what do i have"}
)
