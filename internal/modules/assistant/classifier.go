// README: Keyword intent classifier.
package assistant

import "strings"

// intentKeywords is evaluated in order; the ordering is a deliberate
// tie-break, so a command containing both a book and a cancel keyword
// resolves to book.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentBook, []string{"book", "schedule", "reserve"}},
	{IntentCancel, []string{"cancel", "delete", "remove"}},
	{IntentUpdate, []string{"change", "reschedule", "update", "modify"}},
	{IntentList, []string{"show", "list", "what rides", "my rides"}},
}

// ClassifyIntent maps a raw command to its intent by substring keyword
// matching on the lower-cased text.
func ClassifyIntent(command string) Intent {
	lower := strings.ToLower(command)
	for _, group := range intentKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.intent
			}
		}
	}
	return IntentUnknown
}
