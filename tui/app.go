package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/bassamadnan/mailbrief/orchestrator"
)

// Browser is a two-pane viewer over a finished run: senders on the left,
// the selected sender's summary on the right.
type Browser struct {
	*tview.Application
	rootPages        *tview.Pages
	senderList       *SenderListView
	summaryPane      *SummaryPane
	focusedEntryView *FocusedEntryView
	statusBar        *tview.TextView
}

func NewBrowser(snap *orchestrator.Snapshot) *Browser {
	entries := snap.Entries()
	b := &Browser{Application: tview.NewApplication()}

	b.summaryPane = NewSummaryPane()
	b.senderList = NewSenderListView(b, entries)
	b.focusedEntryView = NewFocusedEntryView()

	dashboard := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(b.senderList.List, 0, 1, true).
		AddItem(b.summaryPane, 0, 3, false)
	dashboard.SetBackgroundColor(tcell.ColorDefault)

	b.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText(statusText(snap)).
		SetTextAlign(tview.AlignLeft)
	b.statusBar.SetBackgroundColor(tcell.ColorDefault)

	mainLayout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(dashboard, 0, 1, true).
		AddItem(b.statusBar, 1, 0, false)
	mainLayout.SetBackgroundColor(tcell.ColorDefault)

	b.rootPages = tview.NewPages().
		AddPage(PageDashboard, mainLayout, true, true).
		AddPage(PageFocusedEntry, b.focusedEntryView, true, false)

	b.Application.SetRoot(b.rootPages, true).EnableMouse(true)
	b.setGlobalKeybindings()

	if len(entries) > 0 {
		b.senderList.SetCurrentItem(0)
		b.summaryPane.SetEntry(entries[0])
	} else {
		b.summaryPane.SetEmpty()
	}
	return b
}

func statusText(snap *orchestrator.Snapshot) string {
	text := fmt.Sprintf(" [::d]%d senders", snap.Len())
	if n := snap.Overwrites(); n > 0 {
		text += fmt.Sprintf(" | %d earlier summaries replaced", n)
	}
	return text + " | [::b]Q/Ctrl+C[::-]:Quit [::b]Ent[::-]:Full [::b]Esc[::-]:Back"
}

func (b *Browser) Run() error {
	b.Application.SetFocus(b.senderList.List)
	return b.Application.Run()
}

func (b *Browser) setGlobalKeybindings() {
	b.Application.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC || event.Rune() == 'q' || event.Rune() == 'Q' {
			b.Stop()
			return nil
		}
		if page, _ := b.rootPages.GetFrontPage(); page == PageFocusedEntry && event.Key() == tcell.KeyEscape {
			b.ShowDashboardView()
			return nil
		}
		return event
	})
}

func (b *Browser) ShowFocusedEntry(e orchestrator.Entry) {
	b.focusedEntryView.SetEntry(e)
	b.rootPages.SwitchToPage(PageFocusedEntry)
	b.Application.SetFocus(b.focusedEntryView.textView)
}

func (b *Browser) ShowDashboardView() {
	b.rootPages.SwitchToPage(PageDashboard)
	b.Application.SetFocus(b.senderList.List)
}
