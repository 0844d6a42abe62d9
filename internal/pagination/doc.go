// Package pagination computes the page-number windows rendered by listing
// templates.
//
// A window is the ordered list of page numbers shown in a pagination control,
// with single gap markers standing in for runs of omitted pages:
//
//	« 1 2 … 4 5 [6] 7 8 9 10 … 41 42 »
//
// Which numbers appear is governed by four Thresholds: how many pages to keep
// at the start of the listing, before and after the current page, and at the
// end of the listing. Window and IterPages are pure functions of their
// arguments; they are safe for concurrent use and never panic, whatever the
// integer inputs.
//
// Paginator and Page model the listing itself (page count, neighbours, item
// ranges) so templates can combine them with a window.
package pagination
