package obs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mimi1vx/osc-plugin-qam/internal/adapters/secondary/obs"
	"github.com/mimi1vx/osc-plugin-qam/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestPayload = `<request id="52542" creator="maintenance-bot">
  <action type="maintenance_release">
    <source project="SUSE:Maintenance:130"/>
  </action>
  <state name="review"/>
  <review state="accepted" by_group="qam-sle" who="anonymous"/>
  <review state="new" by_user="anonymous"/>
</request>`

const collectionPayload = `<collection matches="2">
  <request id="1000" creator="maintenance-bot">
    <state name="review"/>
    <review state="new" by_group="qam-sle"/>
  </request>
  <request id="2000" creator="maintenance-bot">
    <state name="review"/>
    <review state="new" by_group="qam-cloud"/>
  </request>
</collection>`

const commentsPayload = `<comments request="52542">
  <comment id="42" who="anonymous" when="2024-05-01T10:00:00Z">[oscqam]::assign::anonymous::qam-sle</comment>
</comments>`

func testRepository(t *testing.T, handler http.HandlerFunc) *Repository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewRepository(obs.NewClient(server.URL, "anonymous", "secret"))
}

func TestRequestByID(t *testing.T) {
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/request/52542", r.URL.Path)
		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "anonymous", username)
		assert.Equal(t, "secret", password)
		_, _ = w.Write([]byte(requestPayload))
	})

	request, err := repo.RequestByID(context.Background(), "52542")

	require.NoError(t, err)
	assert.Equal(t, "52542", request.ReqID)
	assert.Equal(t, "review", request.State)
	assert.Equal(t, "maintenance-bot", request.Creator)
	assert.Equal(t, "SUSE:Maintenance:130", request.SrcProject)
	require.Len(t, request.Reviews, 2)
	assert.Equal(t, domain.ReviewStateAccepted, request.Reviews[0].State)
	assert.Equal(t, "qam-sle", request.Reviews[0].ByGroup)
	assert.Equal(t, "anonymous", request.Reviews[0].Who)
	assert.Equal(t, "anonymous", request.Reviews[1].ByUser)
}

func TestOpenRequestsForGroupsBuildsSearchPredicate(t *testing.T) {
	var match string
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/request", r.URL.Path)
		match = r.URL.Query().Get("match")
		_, _ = w.Write([]byte(collectionPayload))
	})

	requests, err := repo.OpenRequestsForGroups(context.Background(),
		[]domain.Group{{Name: "qam-sle"}, {Name: "qam-cloud"}})

	require.NoError(t, err)
	assert.Equal(t,
		"state/@name='review' and (review[@by_group='qam-sle' and @state='new']"+
			" or review[@by_group='qam-cloud' and @state='new'])",
		match)
	require.Len(t, requests, 2)
	assert.Equal(t, "1000", requests[0].ReqID)
	assert.Equal(t, "2000", requests[1].ReqID)
}

func TestOpenRequestsForGroupsWithoutGroups(t *testing.T) {
	repo := testRepository(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected")
	})

	requests, err := repo.OpenRequestsForGroups(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestAssignedRequestsForGroupsMatchesAcceptedReviews(t *testing.T) {
	var match string
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		match = r.URL.Query().Get("match")
		_, _ = w.Write([]byte(`<collection matches="0"/>`))
	})

	_, err := repo.AssignedRequestsForGroups(context.Background(), []domain.Group{{Name: "qam-sle"}})

	require.NoError(t, err)
	assert.Equal(t,
		"state/@name='review' and (review[@by_group='qam-sle' and @state='accepted'])",
		match)
}

func TestUserByLogin(t *testing.T) {
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/person/anonymous", r.URL.Path)
		_, _ = w.Write([]byte(`<person>
  <login>anonymous</login>
  <realname>Anony Mouse</realname>
  <email>anon@example.com</email>
</person>`))
	})

	user, err := repo.UserByLogin(context.Background(), "anonymous")

	require.NoError(t, err)
	assert.Equal(t, &domain.User{
		Login:    "anonymous",
		Realname: "Anony Mouse",
		Email:    "anon@example.com",
	}, user)
}

func TestUserByLoginNotFound(t *testing.T) {
	repo := testRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<status code="not_found"><summary>no such user</summary></status>`))
	})

	_, err := repo.UserByLogin(context.Background(), "nobody")

	var notFound *domain.UserNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nobody", notFound.Login)
}

func TestGroupByNameNotFound(t *testing.T) {
	repo := testRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := repo.GroupByName(context.Background(), "qam-nope")

	var notFound *domain.GroupNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "qam-nope", notFound.Name)
}

func TestGroupsForUser(t *testing.T) {
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/group", r.URL.Path)
		assert.Equal(t, "anonymous", r.URL.Query().Get("login"))
		_, _ = w.Write([]byte(`<directory>
  <entry name="qam-sle"/>
  <entry name="qam-cloud"/>
</directory>`))
	})

	groups, err := repo.GroupsForUser(context.Background(), "anonymous")

	require.NoError(t, err)
	assert.Equal(t, []domain.Group{{Name: "qam-sle"}, {Name: "qam-cloud"}}, groups)
}

func TestIncidentPriority(t *testing.T) {
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/source/SUSE:Maintenance:130/_attribute/OBS:IncidentPriority", r.URL.Path)
		_, _ = w.Write([]byte(`<attributes>
  <attribute name="IncidentPriority" namespace="OBS">
    <value>70</value>
  </attribute>
</attributes>`))
	})

	priority := repo.IncidentPriority(context.Background(), "SUSE:Maintenance:130")

	assert.Equal(t, domain.NewPriority(70), priority)
}

func TestIncidentPriorityDegradesToUnknown(t *testing.T) {
	repo := testRepository(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	priority := repo.IncidentPriority(context.Background(), "SUSE:Maintenance:130")

	assert.Equal(t, domain.UnknownPriority(), priority)
}

func TestIncidentPriorityWithoutSourceProject(t *testing.T) {
	repo := testRepository(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected")
	})

	assert.Equal(t, domain.UnknownPriority(), repo.IncidentPriority(context.Background(), ""))
}

func TestStoreRejectReasons(t *testing.T) {
	var gotBody string
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/source/SUSE:Maintenance:130/_attribute", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`<status code="ok"/>`))
	})

	err := repo.StoreRejectReasons(context.Background(), "SUSE:Maintenance:130",
		[]domain.RejectReason{domain.RejectRegression, domain.RejectNotFixed})

	require.NoError(t, err)
	assert.Equal(t,
		`<attributes><attribute namespace="MAINT" name="RejectReason">`+
			`<value>regression</value><value>not_fixed</value></attribute></attributes>`,
		gotBody)
}

func TestAssignReview(t *testing.T) {
	var gotQuery map[string][]string
	var gotBody string
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/request/52542", r.URL.Path)
		gotQuery = r.URL.Query()
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		_, _ = w.Write([]byte(`<status code="ok"/>`))
	})

	err := repo.AssignReview(context.Background(), "52542",
		&domain.User{Login: "anonymous"}, domain.Group{Name: "qam-sle"},
		"[oscqam]::assign::anonymous::qam-sle")

	require.NoError(t, err)
	assert.Equal(t, []string{"assignreview"}, gotQuery["cmd"])
	assert.Equal(t, []string{"qam-sle"}, gotQuery["group"])
	assert.Equal(t, []string{"anonymous"}, gotQuery["reviewer"])
	assert.Equal(t, "[oscqam]::assign::anonymous::qam-sle", gotBody)
}

func TestChangeReviewStateCommands(t *testing.T) {
	tests := []struct {
		name     string
		call     func(r *Repository) error
		newstate string
		by       map[string]string
	}{
		{
			name: "accept group review",
			call: func(r *Repository) error {
				return r.AcceptGroupReview(context.Background(), "52542", domain.Group{Name: "qam-sle"}, "c")
			},
			newstate: "accepted",
			by:       map[string]string{"by_group": "qam-sle"},
		},
		{
			name: "reopen group review",
			call: func(r *Repository) error {
				return r.ReopenGroupReview(context.Background(), "52542", domain.Group{Name: "qam-sle"}, "c")
			},
			newstate: "new",
			by:       map[string]string{"by_group": "qam-sle"},
		},
		{
			name: "accept user review",
			call: func(r *Repository) error {
				return r.AcceptUserReview(context.Background(), "52542", &domain.User{Login: "anonymous"}, "c")
			},
			newstate: "accepted",
			by:       map[string]string{"by_user": "anonymous"},
		},
		{
			name: "decline user review",
			call: func(r *Repository) error {
				return r.DeclineUserReview(context.Background(), "52542", &domain.User{Login: "anonymous"}, "c")
			},
			newstate: "declined",
			by:       map[string]string{"by_user": "anonymous"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery map[string][]string
			repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				gotQuery = r.URL.Query()
				_, _ = w.Write([]byte(`<status code="ok"/>`))
			})

			require.NoError(t, tt.call(repo))
			assert.Equal(t, []string{"changereviewstate"}, gotQuery["cmd"])
			assert.Equal(t, []string{tt.newstate}, gotQuery["newstate"])
			for key, value := range tt.by {
				assert.Equal(t, []string{value}, gotQuery[key])
			}
		})
	}
}

func TestCommentsForRequest(t *testing.T) {
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments/request/52542", r.URL.Path)
		_, _ = w.Write([]byte(commentsPayload))
	})

	comments, err := repo.CommentsForRequest(context.Background(), "52542")

	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "42", comments[0].ID)
	assert.Equal(t, "anonymous", comments[0].Who)
	assert.Equal(t, "[oscqam]::assign::anonymous::qam-sle", comments[0].Text)
	assert.Equal(t, 2024, comments[0].When.Year())
}

func TestDeleteComment(t *testing.T) {
	var gotPath, gotMethod string
	repo := testRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		_, _ = w.Write([]byte(`<status code="ok"/>`))
	})

	require.NoError(t, repo.DeleteComment(context.Background(), "42"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/comment/42", gotPath)
}
