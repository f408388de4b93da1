package gate_test

import (
	"testing"

	"github.com/pawtalk/pawtalk-web/gate"
	"github.com/stretchr/testify/require"
)

func testTable() gate.RouteTable {
	return gate.RouteTable{
		Public:          []string{"/", "/about", "/pricing", "/contact", "/privacy", "/terms"},
		PublicExact:     []string{"/subscription"},
		AuthOnly:        []string{"/login", "/signup"},
		Protected:       []string{"/talk", "/gallery", "/events", "/account", "/reminders"},
		ProtectedNested: []string{"/subscription"},
		LoginPath:       "/login",
		HomePath:        "/",
		MessageParam:    "message",
		RedirectParam:   "redirect",
	}
}

func TestRouteTable_Classify(t *testing.T) {
	table := testTable()

	tests := []struct {
		path string
		want gate.RouteClass
	}{
		{"/", gate.ClassPublic},
		{"/about", gate.ClassPublic},
		{"/about/team", gate.ClassPublic},
		{"/pricing", gate.ClassPublic},
		{"/contact", gate.ClassPublic},

		{"/subscription", gate.ClassPublic},
		{"/subscription/upgrade", gate.ClassProtected},
		{"/subscription/manage", gate.ClassProtected},

		{"/login", gate.ClassAuthOnly},
		{"/login/reset", gate.ClassAuthOnly},
		{"/signup", gate.ClassAuthOnly},

		{"/talk", gate.ClassProtected},
		{"/talk/conversation/42", gate.ClassProtected},
		{"/gallery", gate.ClassProtected},
		{"/events", gate.ClassProtected},
		{"/account", gate.ClassProtected},
		{"/reminders", gate.ClassProtected},
		{"/reminders?due=today", gate.ClassProtected},

		{"/logout", gate.ClassUnclassified},
		{"/no-such-page", gate.ClassUnclassified},
		{"/accountant", gate.ClassUnclassified},
		{"/talking", gate.ClassUnclassified},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			require.Equal(t, tc.want, table.Classify(tc.path))
		})
	}
}

func TestRouteTable_ExactOnlyDoesNotMatchNested(t *testing.T) {
	// A table with no nested protection: sub-paths of the exact-only public
	// route must fall all the way through to Unclassified rather than match
	// the public rule.
	table := testTable()
	table.ProtectedNested = nil

	require.Equal(t, gate.ClassPublic, table.Classify("/subscription"))
	require.Equal(t, gate.ClassUnclassified, table.Classify("/subscription/upgrade"))
}

func TestRouteClass_String(t *testing.T) {
	require.Equal(t, "public", gate.ClassPublic.String())
	require.Equal(t, "auth-only", gate.ClassAuthOnly.String())
	require.Equal(t, "protected", gate.ClassProtected.String())
	require.Equal(t, "unclassified", gate.ClassUnclassified.String())
}
