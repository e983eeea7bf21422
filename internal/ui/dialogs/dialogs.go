// Package dialogs provides a dialog stack and message types. Only the
// topmost dialog receives messages other than window size changes.
package dialogs

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// DialogID identifies a dialog instance.
type DialogID string

// DialogModel represents a dialog component that can be displayed.
type DialogModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (DialogModel, tea.Cmd)
	View() string
	Position() (int, int)
	ID() DialogID
}

// CloseCallback allows dialogs to perform cleanup when closed.
type CloseCallback interface {
	Close() tea.Cmd
}

// OpenDialogMsg is sent to open a new dialog.
type OpenDialogMsg struct {
	Model DialogModel
}

// CloseDialogMsg is sent to close the topmost dialog.
type CloseDialogMsg struct{}

// Open returns a command opening model.
func Open(model DialogModel) tea.Cmd {
	return func() tea.Msg { return OpenDialogMsg{Model: model} }
}

// Close is a command closing the topmost dialog.
func Close() tea.Msg {
	return CloseDialogMsg{}
}

// DialogCmp manages a stack of dialogs.
type DialogCmp interface {
	Update(msg tea.Msg) (DialogCmp, tea.Cmd)

	Dialogs() []DialogModel
	HasDialogs() bool
	GetLayers() []*lipgloss.Layer
	ActiveModel() DialogModel
	ActiveDialogID() DialogID
}

type dialogCmp struct {
	width, height int
	dialogs       []DialogModel
}

// NewDialogCmp creates a new dialog manager.
func NewDialogCmp() DialogCmp {
	return dialogCmp{}
}

// Update handles dialog lifecycle and forwards messages to the active dialog.
func (d dialogCmp) Update(msg tea.Msg) (DialogCmp, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height
		cmds := make([]tea.Cmd, 0, len(d.dialogs))
		for i := range d.dialogs {
			var cmd tea.Cmd
			d.dialogs[i], cmd = d.dialogs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return d, tea.Batch(cmds...)
	case OpenDialogMsg:
		return d.open(msg.Model)
	case CloseDialogMsg:
		return d.closeTop()
	}

	if !d.HasDialogs() {
		return d, nil
	}
	top := len(d.dialogs) - 1
	var cmd tea.Cmd
	d.dialogs[top], cmd = d.dialogs[top].Update(msg)
	return d, cmd
}

func (d dialogCmp) Dialogs() []DialogModel {
	return d.dialogs
}

func (d dialogCmp) HasDialogs() bool {
	return len(d.dialogs) > 0
}

func (d dialogCmp) ActiveModel() DialogModel {
	if len(d.dialogs) == 0 {
		return nil
	}
	return d.dialogs[len(d.dialogs)-1]
}

func (d dialogCmp) ActiveDialogID() DialogID {
	if active := d.ActiveModel(); active != nil {
		return active.ID()
	}
	return ""
}

func (d dialogCmp) GetLayers() []*lipgloss.Layer {
	layers := make([]*lipgloss.Layer, 0, len(d.dialogs))
	for i, dialog := range d.dialogs {
		row, col := dialog.Position()
		layers = append(layers, lipgloss.NewLayer(dialog.View()).X(col).Y(row).Z(i+2))
	}
	return layers
}

// open pushes model. A dialog already in the stack is moved to the top and
// keeps its state.
func (d dialogCmp) open(model DialogModel) (DialogCmp, tea.Cmd) {
	if model == nil || d.ActiveDialogID() == model.ID() {
		return d, nil
	}

	idx := slices.IndexFunc(d.dialogs, func(m DialogModel) bool { return m.ID() == model.ID() })
	if idx >= 0 {
		existing := d.dialogs[idx]
		d.dialogs = append(slices.Delete(slices.Clone(d.dialogs), idx, idx+1), existing)
		return d, nil
	}

	initCmd := model.Init()
	model, sizeCmd := model.Update(tea.WindowSizeMsg{Width: d.width, Height: d.height})
	d.dialogs = append(slices.Clone(d.dialogs), model)
	return d, tea.Batch(initCmd, sizeCmd)
}

func (d dialogCmp) closeTop() (DialogCmp, tea.Cmd) {
	if len(d.dialogs) == 0 {
		return d, nil
	}
	top := d.dialogs[len(d.dialogs)-1]
	d.dialogs = slices.Clone(d.dialogs[:len(d.dialogs)-1])
	if closeable, ok := top.(CloseCallback); ok {
		return d, closeable.Close()
	}
	return d, nil
}
