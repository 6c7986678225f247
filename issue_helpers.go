package userconfig

import "github.com/reoring/userconfig/messages"

// IssueAt creates an Issue at p whose message comes from the message catalog.
// data doubles as the issue Params.
func IssueAt(p PathRef, code string, data map[string]string) Issue {
	var params map[string]any
	if len(data) > 0 {
		params = make(map[string]any, len(data))
		for k, v := range data {
			params[k] = v
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: messages.Message(code, data), Params: params}
}

func singleIssue(iss Issue) Issues { return AppendIssues(nil, iss) }
