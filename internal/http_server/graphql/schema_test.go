// Package graphql
package graphql

import (
	"context"
	"testing"

	"github.com/flybg-dev/flyingsites/internal/interfaces/global"
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	"github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/graphql-go/graphql"
)

type testLogger struct{}

func (l *testLogger) Init(bool)                         {}
func (l *testLogger) ShutdownCallback() global.Callable { return nil }
func (l *testLogger) Debug(string, ...interface{})      {}
func (l *testLogger) DebugF(string, ...interface{})     {}
func (l *testLogger) Info(string, ...interface{})       {}
func (l *testLogger) InfoF(string, ...interface{})      {}
func (l *testLogger) Warn(string, ...interface{})       {}
func (l *testLogger) WarnF(string, ...interface{})      {}
func (l *testLogger) Error(string, ...interface{})      {}
func (l *testLogger) ErrorF(string, ...interface{})     {}
func (l *testLogger) Fatal(string, ...interface{})      {}
func (l *testLogger) FatalF(string, ...interface{})     {}

type stubSiteService struct {
	migrateCalls int
}

func (s *stubSiteService) ListSites(req *service.RequestSiteList) *service.ApiResponse[service.ResponseSiteList] {
	items := []*operation.FlyingSite{
		{ID: 1, Title: operation.LocalizedText{Bg: "Витоша"}, Url: "витоша", WindDirection: []string{"N"}},
	}
	if req.WindDirection == "SW" {
		items = nil
	}
	return service.NewApiResponse(&service.ApiStatus{StatusName: "OK", HttpCode: service.Ok}, service.Unsatisfied,
		&service.ResponseSiteList{Items: items})
}

func (s *stubSiteService) GetSite(req *service.RequestSiteGet) *service.ApiResponse[service.ResponseSiteGet] {
	if req.Id != "витоша" {
		return service.NewApiResponse[service.ResponseSiteGet](&service.ErrSiteNotFound, service.Unsatisfied, nil)
	}
	return service.NewApiResponse(&service.ApiStatus{StatusName: "OK", HttpCode: service.Ok}, service.Unsatisfied,
		&service.ResponseSiteGet{
			Site:         &operation.FlyingSite{ID: 1, Url: "витоша"},
			CanonicalUrl: "витоша",
		})
}

func (s *stubSiteService) CreateSite(req *service.RequestSiteCreate) *service.ApiResponse[operation.FlyingSite] {
	return service.NewApiResponse[operation.FlyingSite](&service.ErrNoPermission, service.Unsatisfied, nil)
}

func (s *stubSiteService) UpdateSite(req *service.RequestSiteUpdate) *service.ApiResponse[operation.FlyingSite] {
	return service.NewApiResponse[operation.FlyingSite](&service.ErrNoPermission, service.Unsatisfied, nil)
}

func (s *stubSiteService) DeleteSite(req *service.RequestSiteDelete) *service.ApiResponse[any] {
	return service.NewApiResponse[any](&service.ErrNoPermission, service.Unsatisfied, nil)
}

func (s *stubSiteService) MigrateSiteUrls(req *service.RequestSiteMigrate) *service.ApiResponse[service.ResponseSiteMigrate] {
	s.migrateCalls++
	if !req.IsSuperAdmin {
		return service.NewApiResponse[service.ResponseSiteMigrate](&service.ErrNoPermission, service.Unsatisfied, nil)
	}
	return service.NewApiResponse(&service.ApiStatus{StatusName: "OK", HttpCode: service.Ok}, service.Unsatisfied,
		&service.ResponseSiteMigrate{Updated: 3, Skipped: []string{}})
}

type stubUserService struct{}

func (s *stubUserService) UserLogin(req *service.RequestUserLogin) *service.ApiResponse[service.ResponseUserLogin] {
	if req.Username != "pilot" || req.Password != "correcthorse" {
		return service.NewApiResponse[service.ResponseUserLogin](
			&service.ApiStatus{StatusName: "WRONG_USERNAME_OR_PASSWORD", Description: "wrong username or password", HttpCode: service.Unauthorized},
			service.Unsatisfied, nil)
	}
	return service.NewApiResponse(&service.ApiStatus{StatusName: "OK", HttpCode: service.Ok}, service.Unsatisfied,
		&service.ResponseUserLogin{Token: "jwt-token", User: &operation.User{ID: 1, Username: "pilot"}})
}

func (s *stubUserService) RequestActivation(req *service.RequestActivation) *service.ApiResponse[any] {
	return service.NewApiResponse[any](&service.ApiStatus{StatusName: "OK", HttpCode: service.Ok}, service.Unsatisfied, nil)
}

func (s *stubUserService) CompleteActivation(req *service.RequestCompleteActivation) *service.ApiResponse[service.ResponseCompleteActivation] {
	return service.NewApiResponse[service.ResponseCompleteActivation](
		&service.ApiStatus{StatusName: "TOKEN_INVALID", HttpCode: service.BadRequest}, service.Unsatisfied, nil)
}

func (s *stubUserService) CreateUserAccounts(req *service.RequestCreateAccounts) *service.ApiResponse[service.ResponseCreateAccounts] {
	return service.NewApiResponse(&service.ApiStatus{StatusName: "OK", HttpCode: service.Ok}, service.Unsatisfied,
		&service.ResponseCreateAccounts{Outcomes: []service.AccountOutcome{{Email: "new@example.com", Created: true}}})
}

func (s *stubUserService) GetUserProfile(req *service.RequestUserProfile) *service.ApiResponse[operation.User] {
	return service.NewApiResponse[operation.User](&service.ErrUserNotFound, service.Unsatisfied, nil)
}

func newTestSchema(t *testing.T) (graphql.Schema, *stubSiteService) {
	t.Helper()
	siteService := &stubSiteService{}
	schema, err := NewSchema(&testLogger{}, siteService, &stubUserService{})
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	return schema, siteService
}

func execute(schema graphql.Schema, ctx context.Context, query string) *graphql.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	return graphql.Do(graphql.Params{Schema: schema, RequestString: query, Context: ctx})
}

func TestSitesQuery(t *testing.T) {
	schema, _ := newTestSchema(t)

	result := execute(schema, nil, `{ sites { id url windDirection } }`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	data := result.Data.(map[string]interface{})
	sites := data["sites"].([]interface{})
	if len(sites) != 1 {
		t.Fatalf("sites = %d; expected 1", len(sites))
	}
	site := sites[0].(map[string]interface{})
	if site["url"] != "витоша" {
		t.Errorf("url = %v; expected витоша", site["url"])
	}
}

func TestSiteQueryNotFound(t *testing.T) {
	schema, _ := newTestSchema(t)

	result := execute(schema, nil, `{ site(id: "липсва") { id } }`)
	if len(result.Errors) == 0 {
		t.Fatal("expected a not-found error")
	}
	extensions := result.Errors[0].Extensions
	if extensions["code"] != service.ErrSiteNotFound.StatusName {
		t.Errorf("code = %v; expected %q", extensions["code"], service.ErrSiteNotFound.StatusName)
	}
}

func TestCompassDirectionsQuery(t *testing.T) {
	schema, _ := newTestSchema(t)

	result := execute(schema, nil, `{ compassDirections }`)
	if len(result.Errors) > 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	directions := result.Data.(map[string]interface{})["compassDirections"].([]interface{})
	if len(directions) != 16 {
		t.Errorf("directions = %d; expected the 16-point compass", len(directions))
	}
}

func TestLoginMutation(t *testing.T) {
	schema, _ := newTestSchema(t)

	success := execute(schema, nil, `mutation { login(username: "pilot", password: "correcthorse") { token } }`)
	if len(success.Errors) > 0 {
		t.Fatalf("errors: %v", success.Errors)
	}
	payload := success.Data.(map[string]interface{})["login"].(map[string]interface{})
	if payload["token"] != "jwt-token" {
		t.Errorf("token = %v; expected jwt-token", payload["token"])
	}

	failure := execute(schema, nil, `mutation { login(username: "nouser", password: "x") { token } }`)
	if len(failure.Errors) == 0 {
		t.Fatal("expected a credentials error")
	}
	if failure.Errors[0].Extensions["code"] != "WRONG_USERNAME_OR_PASSWORD" {
		t.Errorf("code = %v; expected generic credentials code", failure.Errors[0].Extensions["code"])
	}
}

func TestMigrateAddUrlsAuthorization(t *testing.T) {
	schema, siteService := newTestSchema(t)
	query := `mutation { migrateAddUrls { updated } }`

	anonymous := execute(schema, nil, query)
	if len(anonymous.Errors) == 0 {
		t.Fatal("expected an auth error for the anonymous caller")
	}
	if siteService.migrateCalls != 0 {
		t.Errorf("service reached by anonymous caller")
	}

	member := execute(schema, WithIdentity(context.Background(), &Identity{Authenticated: true, Uid: 2}), query)
	if len(member.Errors) == 0 {
		t.Fatal("expected a forbidden error for the non-admin caller")
	}

	admin := execute(schema, WithIdentity(context.Background(), &Identity{Authenticated: true, Uid: 1, IsSuperAdmin: true}), query)
	if len(admin.Errors) > 0 {
		t.Fatalf("admin errors: %v", admin.Errors)
	}
	report := admin.Data.(map[string]interface{})["migrateAddUrls"].(map[string]interface{})
	if report["updated"] != 3 {
		t.Errorf("updated = %v; expected 3", report["updated"])
	}
}
