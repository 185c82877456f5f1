// Package upstream is the gateway's only I/O surface towards the
// curriculum backend. Every call is a single JSON request/response; a
// non-2xx status becomes an error; there is no retry, timeout backoff, or
// ordering guarantee between independent calls.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	appErrors "github.com/alizia-edu/alizia-api/pkg/errors"
)

// Client issues typed requests against the curriculum REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New builds a client for the given base URL.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("upstream error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return appErrors.Upstream(resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("decode %s %s response", method, path))
	}
	return nil
}

// Users fetches the complete user roster.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/users", nil, &users)
	return users, err
}

// Courses fetches all courses.
func (c *Client) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := c.do(ctx, http.MethodGet, "/courses", nil, &courses)
	return courses, err
}

// CourseStudents fetches the roster of one course.
func (c *Client) CourseStudents(ctx context.Context, courseID int64) ([]models.Student, error) {
	var students []models.Student
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/courses/%d/students", courseID), nil, &students)
	return students, err
}

// Areas fetches all knowledge areas with their coordinators.
func (c *Client) Areas(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	err := c.do(ctx, http.MethodGet, "/areas", nil, &areas)
	return areas, err
}

// Subjects fetches all subjects.
func (c *Client) Subjects(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	err := c.do(ctx, http.MethodGet, "/subjects", nil, &subjects)
	return subjects, err
}

// Nuclei fetches the taxonomy roots.
func (c *Client) Nuclei(ctx context.Context) ([]models.ProblematicNucleus, error) {
	var nuclei []models.ProblematicNucleus
	err := c.do(ctx, http.MethodGet, "/problematic-nuclei", nil, &nuclei)
	return nuclei, err
}

// KnowledgeAreas fetches the middle taxonomy level.
func (c *Client) KnowledgeAreas(ctx context.Context) ([]models.KnowledgeArea, error) {
	var areas []models.KnowledgeArea
	err := c.do(ctx, http.MethodGet, "/knowledge-areas", nil, &areas)
	return areas, err
}

// Categories fetches the taxonomy leaves.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, &categories)
	return categories, err
}

// Documents fetches all coordination documents.
func (c *Client) Documents(ctx context.Context) ([]models.CoordinationDocument, error) {
	var docs []models.CoordinationDocument
	err := c.do(ctx, http.MethodGet, "/coordination-documents", nil, &docs)
	return docs, err
}

// Document fetches one coordination document.
func (c *Client) Document(ctx context.Context, id int64) (*models.CoordinationDocument, error) {
	var doc models.CoordinationDocument
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/coordination-documents/%d", id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateDocument posts the assembled wizard payload.
func (c *Client) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest) (*models.CoordinationDocument, error) {
	var doc models.CoordinationDocument
	if err := c.do(ctx, http.MethodPost, "/coordination-documents", req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// PatchDocument applies a partial update (typically a status change).
func (c *Client) PatchDocument(ctx context.Context, id int64, patch map[string]interface{}) (*models.CoordinationDocument, error) {
	var doc models.CoordinationDocument
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/coordination-documents/%d", id), patch, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a coordination document.
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/coordination-documents/%d", id), nil, nil)
}

// CourseSubjects fetches the course/subject/teacher join.
func (c *Client) CourseSubjects(ctx context.Context) ([]models.CourseSubject, error) {
	var list []models.CourseSubject
	err := c.do(ctx, http.MethodGet, "/course-subjects", nil, &list)
	return list, err
}

// CourseSubject fetches one join row.
func (c *Client) CourseSubject(ctx context.Context, id int64) (*models.CourseSubject, error) {
	var cs models.CourseSubject
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/course-subjects/%d", id), nil, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

// CoordinationStatus reports document coverage for one course-subject.
func (c *Client) CoordinationStatus(ctx context.Context, id int64) (*models.CoordinationStatus, error) {
	var status models.CoordinationStatus
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/course-subjects/%d/coordination-status", id), nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CourseSubjectLessonPlans lists the plans of one course-subject.
func (c *Client) CourseSubjectLessonPlans(ctx context.Context, id int64) ([]models.LessonPlan, error) {
	var plans []models.LessonPlan
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/course-subjects/%d/lesson-plans", id), nil, &plans)
	return plans, err
}

// TeacherCourses lists the courses a teacher works in.
func (c *Client) TeacherCourses(ctx context.Context, teacherID int64) ([]models.Course, error) {
	var courses []models.Course
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teachers/%d/courses", teacherID), nil, &courses)
	return courses, err
}

// MomentTypes fetches the lesson phase descriptors.
func (c *Client) MomentTypes(ctx context.Context) ([]models.MomentType, error) {
	var types []models.MomentType
	err := c.do(ctx, http.MethodGet, "/moment-types", nil, &types)
	return types, err
}

// Activities fetches the activity bank.
func (c *Client) Activities(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	err := c.do(ctx, http.MethodGet, "/activities", nil, &activities)
	return activities, err
}

// TeacherLessonPlans lists all plans of the acting teacher.
func (c *Client) TeacherLessonPlans(ctx context.Context) ([]models.LessonPlan, error) {
	var plans []models.LessonPlan
	err := c.do(ctx, http.MethodGet, "/teacher-lesson-plans", nil, &plans)
	return plans, err
}

// TeacherLessonPlan fetches one plan.
func (c *Client) TeacherLessonPlan(ctx context.Context, id int64) (*models.LessonPlan, error) {
	var plan models.LessonPlan
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/teacher-lesson-plans/%d", id), nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreateLessonPlan posts the assembled lesson wizard payload.
func (c *Client) CreateLessonPlan(ctx context.Context, req dto.CreateLessonPlanRequest) (*models.LessonPlan, error) {
	var plan models.LessonPlan
	if err := c.do(ctx, http.MethodPost, "/teacher-lesson-plans", req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// PatchLessonPlan applies a partial update to a plan.
func (c *Client) PatchLessonPlan(ctx context.Context, id int64, patch map[string]interface{}) (*models.LessonPlan, error) {
	var plan models.LessonPlan
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/teacher-lesson-plans/%d", id), patch, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// DeleteLessonPlan removes a plan.
func (c *Client) DeleteLessonPlan(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/teacher-lesson-plans/%d", id), nil, nil)
}

// Fonts lists information sources, optionally scoped to an area.
func (c *Client) Fonts(ctx context.Context, areaID *int64) ([]models.Font, error) {
	path := "/fonts"
	if areaID != nil {
		query := url.Values{}
		query.Set("area_id", fmt.Sprintf("%d", *areaID))
		path += "?" + query.Encode()
	}
	var fonts []models.Font
	err := c.do(ctx, http.MethodGet, path, nil, &fonts)
	return fonts, err
}

type chatPayload struct {
	Content string `json:"content"`
}

type chatReply struct {
	Content string `json:"content"`
}

// DocumentChat sends one user message to the document assistant.
func (c *Client) DocumentChat(ctx context.Context, docID int64, content string) (string, error) {
	var reply chatReply
	path := fmt.Sprintf("/coordination-documents/%d/chat", docID)
	if err := c.do(ctx, http.MethodPost, path, chatPayload{Content: content}, &reply); err != nil {
		return "", err
	}
	return reply.Content, nil
}

// GenerateDocument asks the assistant to fill per-subject content.
func (c *Client) GenerateDocument(ctx context.Context, docID int64) (*models.CoordinationDocument, error) {
	var doc models.CoordinationDocument
	path := fmt.Sprintf("/coordination-documents/%d/generate", docID)
	if err := c.do(ctx, http.MethodPost, path, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LessonChat sends one user message to the lesson-plan assistant.
func (c *Client) LessonChat(ctx context.Context, planID int64, content string) (string, error) {
	var reply chatReply
	path := fmt.Sprintf("/teacher-lesson-plans/%d/chat", planID)
	if err := c.do(ctx, http.MethodPost, path, chatPayload{Content: content}, &reply); err != nil {
		return "", err
	}
	return reply.Content, nil
}
