package dto

// FormAnswerRow is one stored answer joined with the attendee's name, as read
// from storage for the submissions view.
type FormAnswerRow struct {
	QuestionID string
	UserName   string
	Text       string
}

// SubmissionAnswer is one attendee's answer within a grouped submissions view.
type SubmissionAnswer struct {
	UserName string
	Text     string
}

// EventSubmission groups every attendee's answers under one form question, in
// the form's question order.
type EventSubmission struct {
	QuestionID   string
	QuestionText string
	Answers      []SubmissionAnswer
}
