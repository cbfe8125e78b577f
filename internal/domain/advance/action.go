package advance

// ActionType identifies what the client does after a wizard button
type ActionType string

// ActionCloseWindow closes the wizard dialog
const ActionCloseWindow ActionType = "ir.actions.act_window_close"

// ActionResult is returned by wizard buttons
type ActionResult struct {
	Type ActionType `json:"type"`
}

// CloseAction returns the action closing the wizard
func CloseAction() ActionResult {
	return ActionResult{Type: ActionCloseWindow}
}
