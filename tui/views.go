package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/bassamadnan/mailbrief/orchestrator"
)

const (
	PageDashboard    = "dashboard"
	PageFocusedEntry = "focusedEntry"
)

type SenderListView struct {
	*tview.List
	browser *Browser
	entries []orchestrator.Entry
}

func NewSenderListView(browser *Browser, entries []orchestrator.Entry) *SenderListView {
	list := tview.NewList().
		ShowSecondaryText(true).
		SetSecondaryTextColor(SecondaryTextColor)
	list.SetBackgroundColor(tcell.ColorDefault)
	list.SetSelectedStyle(ListSelectedStyle)
	list.SetBorder(true).SetTitle(fmt.Sprintf("Senders (%d)", len(entries)))

	slv := &SenderListView{List: list, browser: browser, entries: entries}
	for _, e := range entries {
		main := fmt.Sprintf("[white]%s", tview.Escape(truncate(shortSender(e.Sender), 30)))
		secondary := fmt.Sprintf("[::d]%s", kindLabel(e.Summary.Kind))
		list.AddItem(main, secondary, 0, nil)
	}

	list.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		if e, ok := slv.entry(index); ok {
			slv.browser.summaryPane.SetEntry(e)
		}
	})
	list.SetSelectedFunc(func(index int, _ string, _ string, _ rune) {
		if e, ok := slv.entry(index); ok {
			slv.browser.ShowFocusedEntry(e)
		}
	})
	return slv
}

func (slv *SenderListView) entry(index int) (orchestrator.Entry, bool) {
	if index < 0 || index >= len(slv.entries) {
		return orchestrator.Entry{}, false
	}
	return slv.entries[index], true
}

type SummaryPane struct {
	*tview.TextView
}

func NewSummaryPane() *SummaryPane {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetWordWrap(true)
	tv.SetBackgroundColor(tcell.ColorDefault)
	tv.SetBorder(true).SetTitle("Summary")
	return &SummaryPane{TextView: tv}
}

func (sp *SummaryPane) SetEntry(e orchestrator.Entry) {
	sp.SetText(entryText(e, 60)).ScrollToBeginning()
	sp.SetTitle(fmt.Sprintf("Summary: %s", tview.Escape(truncate(shortSender(e.Sender), 40))))
}

func (sp *SummaryPane) SetEmpty() {
	sp.SetText("\n[lightblue::b]mailbrief[-::-]\n\nNo unread emails from today found.\n\n[::d]Press Q or Ctrl+C to quit.[::-]").
		ScrollToBeginning()
	sp.SetTitle("Home")
}

func entryText(e orchestrator.Entry, rule int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]From:[::-] %s\n", tview.Escape(e.Sender))
	fmt.Fprintf(&b, "[::b]Kind:[::-] %s\n\n", kindLabel(e.Summary.Kind))
	b.WriteString(strings.Repeat("─", rule) + "\n\n")
	b.WriteString(tview.Escape(e.Summary.String()))
	return b.String()
}

type FocusedEntryView struct {
	*tview.Frame
	textView *tview.TextView
}

func NewFocusedEntryView() *FocusedEntryView {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true).
		SetWordWrap(true)
	textView.SetBackgroundColor(tcell.ColorDefault)

	frame := tview.NewFrame(textView)
	frame.SetBorder(true).SetBackgroundColor(tcell.ColorDefault)
	return &FocusedEntryView{Frame: frame, textView: textView}
}

func (fev *FocusedEntryView) SetEntry(e orchestrator.Entry) {
	fev.textView.SetText(entryText(e, 70)).ScrollToBeginning()
	fev.Frame.Clear().
		AddText(fmt.Sprintf("From: %s", truncate(e.Sender, 60)), true, tview.AlignCenter, tcell.ColorYellow).
		AddText("Press Esc to go back", false, tview.AlignCenter, tcell.ColorDimGray)
}
