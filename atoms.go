package ewmh

import (
	"strconv"

	"github.com/BurntSushi/xgbewmh/xgb"
)

// AtomName is one of the atoms a Conn interns when it is created.
type AtomName int

const (
	UTF8String AtomName = iota
	WmProtocols
	Manager

	NetSupported
	NetClientList
	NetClientListStacking
	NetNumberOfDesktops
	NetDesktopGeometry
	NetDesktopViewport
	NetCurrentDesktop
	NetDesktopNames
	NetActiveWindow
	NetWorkarea
	NetSupportingWmCheck
	NetVirtualRoots
	NetDesktopLayout
	NetShowingDesktop

	NetCloseWindow
	NetMoveresizeWindow
	NetWmMoveresize
	NetRestackWindow
	NetRequestFrameExtents

	NetWmName
	NetWmVisibleName
	NetWmIconName
	NetWmVisibleIconName
	NetWmDesktop
	NetWmWindowType
	NetWmState
	NetWmAllowedActions
	NetWmStrut
	NetWmStrutPartial
	NetWmIconGeometry
	NetWmIcon
	NetWmPid
	NetWmHandledIcons
	NetWmUserTime
	NetWmUserTimeWindow
	NetFrameExtents
	NetWmFullscreenMonitors
	NetWmFullPlacement

	NetWmPing
	NetWmSyncRequest
	NetWmSyncRequestCounter

	NetWmWindowTypeDesktop
	NetWmWindowTypeDock
	NetWmWindowTypeToolbar
	NetWmWindowTypeMenu
	NetWmWindowTypeUtility
	NetWmWindowTypeSplash
	NetWmWindowTypeDialog
	NetWmWindowTypeDropdownMenu
	NetWmWindowTypePopupMenu
	NetWmWindowTypeTooltip
	NetWmWindowTypeNotification
	NetWmWindowTypeCombo
	NetWmWindowTypeDnd
	NetWmWindowTypeNormal

	NetWmStateModal
	NetWmStateSticky
	NetWmStateMaximizedVert
	NetWmStateMaximizedHorz
	NetWmStateShaded
	NetWmStateSkipTaskbar
	NetWmStateSkipPager
	NetWmStateHidden
	NetWmStateFullscreen
	NetWmStateAbove
	NetWmStateBelow
	NetWmStateDemandsAttention

	NetWmActionMove
	NetWmActionResize
	NetWmActionMinimize
	NetWmActionShade
	NetWmActionStick
	NetWmActionMaximizeHorz
	NetWmActionMaximizeVert
	NetWmActionFullscreen
	NetWmActionChangeDesktop
	NetWmActionClose
	NetWmActionAbove
	NetWmActionBelow

	atomNameCount
)

var atomNames = [atomNameCount]string{
	UTF8String:  "UTF8_STRING",
	WmProtocols: "WM_PROTOCOLS",
	Manager:     "MANAGER",

	NetSupported:          "_NET_SUPPORTED",
	NetClientList:         "_NET_CLIENT_LIST",
	NetClientListStacking: "_NET_CLIENT_LIST_STACKING",
	NetNumberOfDesktops:   "_NET_NUMBER_OF_DESKTOPS",
	NetDesktopGeometry:    "_NET_DESKTOP_GEOMETRY",
	NetDesktopViewport:    "_NET_DESKTOP_VIEWPORT",
	NetCurrentDesktop:     "_NET_CURRENT_DESKTOP",
	NetDesktopNames:       "_NET_DESKTOP_NAMES",
	NetActiveWindow:       "_NET_ACTIVE_WINDOW",
	NetWorkarea:           "_NET_WORKAREA",
	NetSupportingWmCheck:  "_NET_SUPPORTING_WM_CHECK",
	NetVirtualRoots:       "_NET_VIRTUAL_ROOTS",
	NetDesktopLayout:      "_NET_DESKTOP_LAYOUT",
	NetShowingDesktop:     "_NET_SHOWING_DESKTOP",

	NetCloseWindow:         "_NET_CLOSE_WINDOW",
	NetMoveresizeWindow:    "_NET_MOVERESIZE_WINDOW",
	NetWmMoveresize:        "_NET_WM_MOVERESIZE",
	NetRestackWindow:       "_NET_RESTACK_WINDOW",
	NetRequestFrameExtents: "_NET_REQUEST_FRAME_EXTENTS",

	NetWmName:               "_NET_WM_NAME",
	NetWmVisibleName:        "_NET_WM_VISIBLE_NAME",
	NetWmIconName:           "_NET_WM_ICON_NAME",
	NetWmVisibleIconName:    "_NET_WM_VISIBLE_ICON_NAME",
	NetWmDesktop:            "_NET_WM_DESKTOP",
	NetWmWindowType:         "_NET_WM_WINDOW_TYPE",
	NetWmState:              "_NET_WM_STATE",
	NetWmAllowedActions:     "_NET_WM_ALLOWED_ACTIONS",
	NetWmStrut:              "_NET_WM_STRUT",
	NetWmStrutPartial:       "_NET_WM_STRUT_PARTIAL",
	NetWmIconGeometry:       "_NET_WM_ICON_GEOMETRY",
	NetWmIcon:               "_NET_WM_ICON",
	NetWmPid:                "_NET_WM_PID",
	NetWmHandledIcons:       "_NET_WM_HANDLED_ICONS",
	NetWmUserTime:           "_NET_WM_USER_TIME",
	NetWmUserTimeWindow:     "_NET_WM_USER_TIME_WINDOW",
	NetFrameExtents:         "_NET_FRAME_EXTENTS",
	NetWmFullscreenMonitors: "_NET_WM_FULLSCREEN_MONITORS",
	NetWmFullPlacement:      "_NET_WM_FULL_PLACEMENT",

	NetWmPing:               "_NET_WM_PING",
	NetWmSyncRequest:        "_NET_WM_SYNC_REQUEST",
	NetWmSyncRequestCounter: "_NET_WM_SYNC_REQUEST_COUNTER",

	NetWmWindowTypeDesktop:      "_NET_WM_WINDOW_TYPE_DESKTOP",
	NetWmWindowTypeDock:         "_NET_WM_WINDOW_TYPE_DOCK",
	NetWmWindowTypeToolbar:      "_NET_WM_WINDOW_TYPE_TOOLBAR",
	NetWmWindowTypeMenu:         "_NET_WM_WINDOW_TYPE_MENU",
	NetWmWindowTypeUtility:      "_NET_WM_WINDOW_TYPE_UTILITY",
	NetWmWindowTypeSplash:       "_NET_WM_WINDOW_TYPE_SPLASH",
	NetWmWindowTypeDialog:       "_NET_WM_WINDOW_TYPE_DIALOG",
	NetWmWindowTypeDropdownMenu: "_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
	NetWmWindowTypePopupMenu:    "_NET_WM_WINDOW_TYPE_POPUP_MENU",
	NetWmWindowTypeTooltip:      "_NET_WM_WINDOW_TYPE_TOOLTIP",
	NetWmWindowTypeNotification: "_NET_WM_WINDOW_TYPE_NOTIFICATION",
	NetWmWindowTypeCombo:        "_NET_WM_WINDOW_TYPE_COMBO",
	NetWmWindowTypeDnd:          "_NET_WM_WINDOW_TYPE_DND",
	NetWmWindowTypeNormal:       "_NET_WM_WINDOW_TYPE_NORMAL",

	NetWmStateModal:            "_NET_WM_STATE_MODAL",
	NetWmStateSticky:           "_NET_WM_STATE_STICKY",
	NetWmStateMaximizedVert:    "_NET_WM_STATE_MAXIMIZED_VERT",
	NetWmStateMaximizedHorz:    "_NET_WM_STATE_MAXIMIZED_HORZ",
	NetWmStateShaded:           "_NET_WM_STATE_SHADED",
	NetWmStateSkipTaskbar:      "_NET_WM_STATE_SKIP_TASKBAR",
	NetWmStateSkipPager:        "_NET_WM_STATE_SKIP_PAGER",
	NetWmStateHidden:           "_NET_WM_STATE_HIDDEN",
	NetWmStateFullscreen:       "_NET_WM_STATE_FULLSCREEN",
	NetWmStateAbove:            "_NET_WM_STATE_ABOVE",
	NetWmStateBelow:            "_NET_WM_STATE_BELOW",
	NetWmStateDemandsAttention: "_NET_WM_STATE_DEMANDS_ATTENTION",

	NetWmActionMove:          "_NET_WM_ACTION_MOVE",
	NetWmActionResize:        "_NET_WM_ACTION_RESIZE",
	NetWmActionMinimize:      "_NET_WM_ACTION_MINIMIZE",
	NetWmActionShade:         "_NET_WM_ACTION_SHADE",
	NetWmActionStick:         "_NET_WM_ACTION_STICK",
	NetWmActionMaximizeHorz:  "_NET_WM_ACTION_MAXIMIZE_HORZ",
	NetWmActionMaximizeVert:  "_NET_WM_ACTION_MAXIMIZE_VERT",
	NetWmActionFullscreen:    "_NET_WM_ACTION_FULLSCREEN",
	NetWmActionChangeDesktop: "_NET_WM_ACTION_CHANGE_DESKTOP",
	NetWmActionClose:         "_NET_WM_ACTION_CLOSE",
	NetWmActionAbove:         "_NET_WM_ACTION_ABOVE",
	NetWmActionBelow:         "_NET_WM_ACTION_BELOW",
}

func (n AtomName) String() string {
	if n < 0 || n >= atomNameCount {
		return "AtomName(" + strconv.Itoa(int(n)) + ")"
	}
	return atomNames[n]
}

// AtomNames returns every name a Conn interns, in AtomName order. The
// per-screen _NET_WM_CM_S<n> selections come after them.
func AtomNames() []string {
	return append([]string(nil), atomNames[:]...)
}

// wmCMSName is the compositing manager selection of a screen.
func wmCMSName(screen int) string {
	return "_NET_WM_CM_S" + strconv.Itoa(screen)
}

// AtomTable maps the fixed set of names to the atoms the server assigned
// them. It is filled once by Connect and only read afterwards, so it can be
// shared between goroutines without locking.
type AtomTable struct {
	atoms  [atomNameCount]xgb.Atom
	wmCMS  []xgb.Atom
	byName map[string]xgb.Atom
	byAtom map[xgb.Atom]string
}

func newAtomTable(fixed [atomNameCount]xgb.Atom, wmCMS []xgb.Atom) *AtomTable {
	t := &AtomTable{
		atoms:  fixed,
		wmCMS:  wmCMS,
		byName: make(map[string]xgb.Atom, int(atomNameCount)+len(wmCMS)),
		byAtom: make(map[xgb.Atom]string, int(atomNameCount)+len(wmCMS)),
	}
	for i, atom := range fixed {
		t.byName[atomNames[i]] = atom
		t.byAtom[atom] = atomNames[i]
	}
	for i, atom := range wmCMS {
		t.byName[wmCMSName(i)] = atom
		t.byAtom[atom] = wmCMSName(i)
	}
	return t
}

// Atom returns the atom for name.
func (t *AtomTable) Atom(name AtomName) xgb.Atom {
	if name < 0 || name >= atomNameCount {
		return xgb.AtomNone
	}
	return t.atoms[name]
}

// Lookup finds the atom interned for a name given as a string, such as
// "_NET_WM_STATE_FULLSCREEN" or "_NET_WM_CM_S0".
func (t *AtomTable) Lookup(name string) (xgb.Atom, bool) {
	atom, ok := t.byName[name]
	return atom, ok
}

// Name is the reverse of Lookup.
func (t *AtomTable) Name(atom xgb.Atom) (string, bool) {
	name, ok := t.byAtom[atom]
	return name, ok
}

// WmCMSn returns the _NET_WM_CM_S<screen> atom, or AtomNone for a screen
// that does not exist.
func (t *AtomTable) WmCMSn(screen int) xgb.Atom {
	if screen < 0 || screen >= len(t.wmCMS) {
		return xgb.AtomNone
	}
	return t.wmCMS[screen]
}

// Len is the number of atoms in the table.
func (t *AtomTable) Len() int {
	return int(atomNameCount) + len(t.wmCMS)
}
