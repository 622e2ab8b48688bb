package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	httpadapter "tasktracker/internal/adapter/http"
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/handlers"
	"tasktracker/internal/adapter/storage/csvfile"
	appservice "tasktracker/internal/app/service"
	"tasktracker/internal/core/history"
	"tasktracker/internal/core/manager"
	"tasktracker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// APISuite drives the real service through the router. newRepository decides
// where snapshots go; every test starts from an empty store.
type APISuite struct {
	suite.Suite

	newRepository func(t *testing.T) ports.SnapshotRepository
	repository    ports.SnapshotRepository
	router        *gin.Engine
}

func TestAPISuite_CSV(t *testing.T) {
	suite.Run(t, &APISuite{
		newRepository: func(t *testing.T) ports.SnapshotRepository {
			return csvfile.NewRepository(filepath.Join(t.TempDir(), "tasks.csv"))
		},
	})
}

func (s *APISuite) SetupTest() {
	s.repository = s.newRepository(s.T())
	s.restart()
}

// restart builds a fresh service over the same store, as a process restart would.
func (s *APISuite) restart() {
	service := appservice.NewTaskService(manager.New(history.NewTracker(0)), s.repository)
	s.Require().NoError(service.Load(context.Background()))

	router := gin.New()
	httpadapter.RegisterRoutes(router, handlers.NewHealthHandler(s.repository, "test"), handlers.NewTaskHandler(service))
	s.router = router
}

func (s *APISuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) item(method, path, body string, status int) dto.TaskItem {
	rec := s.do(method, path, body)
	s.Require().Equal(status, rec.Code, rec.Body.String())
	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func (s *APISuite) ids(path string) []int {
	rec := s.do(http.MethodGet, path, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var got []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	ids := make([]int, 0, len(got))
	for _, item := range got {
		ids = append(ids, item.ID)
	}
	return ids
}

// seed creates epic 1 with subtasks 2 (DONE, 09:00-10:00) and 3 (NEW, 12:00-14:00).
func (s *APISuite) seed() {
	s.item(http.MethodPost, "/api/epics", `{"title":"Release"}`, http.StatusCreated)
	s.item(http.MethodPost, "/api/subtasks",
		`{"title":"Build","epic_id":1,"status":"DONE","start_time":"2026-03-01T09:00:00Z","duration":60}`, http.StatusCreated)
	s.item(http.MethodPost, "/api/subtasks",
		`{"title":"Test","epic_id":1,"start_time":"2026-03-01T12:00:00Z","duration":120}`, http.StatusCreated)
}

func (s *APISuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/health", "")
	s.Require().Equal(http.StatusOK, rec.Code)
}

func (s *APISuite) TestEmptyStore() {
	s.Require().Empty(s.ids("/api/tasks"))
	s.Require().Empty(s.ids("/api/epics"))
	s.Require().Empty(s.ids("/api/subtasks"))
	s.Require().Empty(s.ids("/api/history"))
	s.Require().Empty(s.ids("/api/prioritized"))
}

func (s *APISuite) TestEpicAggregatesSubtasks() {
	s.seed()

	epic := s.item(http.MethodGet, "/api/epics/1", "", http.StatusOK)
	s.Require().Equal("IN_PROGRESS", epic.Status)
	s.Require().Equal("2026-03-01T09:00:00Z", *epic.StartTime)
	s.Require().Equal("2026-03-01T14:00:00Z", *epic.EndTime)
	s.Require().Equal(int64(180), epic.Duration)
	s.Require().Equal([]int{2, 3}, epic.SubtaskIDs)
	s.Require().Equal([]int{2, 3}, s.ids("/api/epics/1/subtasks"))

	s.item(http.MethodPut, "/api/subtasks/3",
		`{"title":"Test","status":"DONE","start_time":"2026-03-01T12:00:00Z","duration":120}`, http.StatusOK)
	s.Require().Equal("DONE", s.item(http.MethodGet, "/api/epics/1", "", http.StatusOK).Status)
}

func (s *APISuite) TestOverlapAndPriority() {
	s.seed()

	rec := s.do(http.MethodPost, "/api/tasks", `{"title":"Meeting","start_time":"2026-03-01T09:30:00Z","duration":30}`)
	s.Require().Equal(http.StatusNotAcceptable, rec.Code)

	// touching the start of subtask 2 is not an overlap, and the rejected
	// request above did not consume an id
	standup := s.item(http.MethodPost, "/api/tasks",
		`{"title":"Standup","start_time":"2026-03-01T08:30:00Z","duration":30}`, http.StatusCreated)
	s.Require().Equal(4, standup.ID)
	s.item(http.MethodPost, "/api/tasks", `{"title":"Someday"}`, http.StatusCreated)

	s.Require().Equal([]int{4, 2, 3}, s.ids("/api/prioritized"))
}

func (s *APISuite) TestSubtaskNeedsExistingEpic() {
	rec := s.do(http.MethodPost, "/api/subtasks", `{"title":"Orphan","epic_id":99}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/epics/99/subtasks", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestHistoryAndRestart() {
	s.seed()
	s.item(http.MethodPost, "/api/tasks", `{"title":"Standup","start_time":"2026-03-01T08:30:00Z","duration":30}`, http.StatusCreated)

	s.item(http.MethodGet, "/api/epics/1", "", http.StatusOK)
	s.item(http.MethodGet, "/api/tasks/4", "", http.StatusOK)
	s.item(http.MethodGet, "/api/subtasks/2", "", http.StatusOK)
	s.item(http.MethodGet, "/api/epics/1", "", http.StatusOK)
	s.Require().Equal([]int{4, 2, 1}, s.ids("/api/history"))

	// views are saved with the next change
	s.item(http.MethodPut, "/api/epics/1", `{"title":"Release 1.0"}`, http.StatusOK)
	s.restart()

	s.Require().Equal([]int{4, 2, 1}, s.ids("/api/history"))
	s.Require().Equal([]int{4, 2, 3}, s.ids("/api/prioritized"))
	epic := s.item(http.MethodGet, "/api/epics/1", "", http.StatusOK)
	s.Require().Equal("Release 1.0", epic.Title)
	s.Require().Equal("IN_PROGRESS", epic.Status)

	next := s.item(http.MethodPost, "/api/tasks", `{"title":"After restart"}`, http.StatusCreated)
	s.Require().Equal(5, next.ID)
}

func (s *APISuite) TestDeleteEpicCascades() {
	s.seed()
	s.item(http.MethodPost, "/api/tasks", `{"title":"Standup","start_time":"2026-03-01T08:30:00Z","duration":30}`, http.StatusCreated)
	s.item(http.MethodGet, "/api/subtasks/2", "", http.StatusOK)
	s.item(http.MethodGet, "/api/tasks/4", "", http.StatusOK)

	s.Require().Equal(http.StatusOK, s.do(http.MethodDelete, "/api/epics/1", "").Code)

	s.Require().Empty(s.ids("/api/subtasks"))
	s.Require().Equal([]int{4}, s.ids("/api/history"))
	s.Require().Equal([]int{4}, s.ids("/api/prioritized"))
	s.Require().Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/subtasks/2", "").Code)

	s.restart()
	s.Require().Empty(s.ids("/api/epics"))
	s.Require().Equal([]int{4}, s.ids("/api/tasks"))
}

func (s *APISuite) TestDeleteAllSubtasksResetsEpic() {
	s.seed()
	s.Require().Equal(http.StatusOK, s.do(http.MethodDelete, "/api/subtasks", "").Code)

	epic := s.item(http.MethodGet, "/api/epics/1", "", http.StatusOK)
	s.Require().Equal("NEW", epic.Status)
	s.Require().Empty(epic.SubtaskIDs)
	s.Require().Nil(epic.StartTime)
	s.Require().Zero(epic.Duration)
}

func (s *APISuite) TestEndTime() {
	s.seed()
	rec := s.do(http.MethodGet, "/api/end-time/2", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"id":2,"end_time":"2026-03-01T10:00:00Z"}`, rec.Body.String())

	s.Require().Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/end-time/50", "").Code)
}
