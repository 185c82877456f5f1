// Package state holds the per-session single source of truth: every
// fetched collection, the current-selection pointers, the two wizard
// drafts and the two assistant transcripts. All mutation goes through
// action methods serialized by one mutex, mirroring the serialization a
// single-threaded event loop would provide.
package state

import (
	"sync"

	"github.com/alizia-edu/alizia-api/internal/dto"
	"github.com/alizia-edu/alizia-api/internal/models"
	"github.com/alizia-edu/alizia-api/internal/wizard"
)

// Store is a synchronous in-memory state container. It does not survive a
// process restart; a new session re-authenticates and re-fetches.
type Store struct {
	mu sync.Mutex

	currentUser models.User

	users          []models.User
	courses        []models.Course
	areas          []models.Area
	subjects       []models.Subject
	courseSubjects []models.CourseSubject
	nuclei         []models.ProblematicNucleus
	knowledgeAreas []models.KnowledgeArea
	categories     []models.Category
	momentTypes    []models.MomentType
	activities     []models.Activity
	documents      []models.CoordinationDocument
	resources      []models.Resource
	fonts          []models.Font

	currentDocumentID      *int64
	currentCourseSubjectID *int64
	currentLessonPlanID    *int64
	currentResourceID      *int64

	documentDraft wizard.DocumentDraft
	lessonDraft   wizard.LessonDraft

	documentChat []models.ChatMessage
	lessonChat   []models.ChatMessage
}

// New builds a store for the given user with empty collections and both
// wizard drafts at their initial literal.
func New(user models.User) *Store {
	return &Store{
		currentUser:   user,
		documentDraft: wizard.NewDocumentDraft(),
		lessonDraft:   wizard.NewLessonDraft(),
	}
}

// CurrentUser returns the session's user.
func (s *Store) CurrentUser() models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}

// Bootstrap bundles the ten independently fetched collections of the
// initial load. It is committed atomically: all collections or none.
type Bootstrap struct {
	Users          []models.User
	Courses        []models.Course
	Areas          []models.Area
	Subjects       []models.Subject
	CourseSubjects []models.CourseSubject
	Nuclei         []models.ProblematicNucleus
	KnowledgeAreas []models.KnowledgeArea
	Categories     []models.Category
	MomentTypes    []models.MomentType
	Activities     []models.Activity
}

// ApplyBootstrap replaces all bootstrap collections under one lock.
func (s *Store) ApplyBootstrap(b Bootstrap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = b.Users
	s.courses = b.Courses
	s.areas = b.Areas
	s.subjects = b.Subjects
	s.courseSubjects = b.CourseSubjects
	s.nuclei = b.Nuclei
	s.knowledgeAreas = b.KnowledgeAreas
	s.categories = b.Categories
	s.momentTypes = b.MomentTypes
	s.activities = b.Activities
}

// Collection setters replace the named collection wholesale; callers are
// responsible for re-fetching before calling. There are no merge semantics.

func (s *Store) SetUsers(users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
}

func (s *Store) SetCourses(courses []models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses = courses
}

func (s *Store) SetAreas(areas []models.Area) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.areas = areas
}

func (s *Store) SetSubjects(subjects []models.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subjects = subjects
}

func (s *Store) SetCourseSubjects(courseSubjects []models.CourseSubject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courseSubjects = courseSubjects
}

func (s *Store) SetNuclei(nuclei []models.ProblematicNucleus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nuclei = nuclei
}

func (s *Store) SetKnowledgeAreas(areas []models.KnowledgeArea) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.knowledgeAreas = areas
}

func (s *Store) SetCategories(categories []models.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

func (s *Store) SetMomentTypes(momentTypes []models.MomentType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.momentTypes = momentTypes
}

func (s *Store) SetActivities(activities []models.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = activities
}

func (s *Store) SetDocuments(documents []models.CoordinationDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = documents
}

func (s *Store) SetResources(resources []models.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = resources
}

func (s *Store) SetFonts(fonts []models.Font) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fonts = fonts
}

// Collection getters return shallow copies so readers never alias the
// store's backing slices.

func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User{}, s.users...)
}

func (s *Store) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Course{}, s.courses...)
}

func (s *Store) Areas() []models.Area {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Area{}, s.areas...)
}

func (s *Store) Subjects() []models.Subject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Subject{}, s.subjects...)
}

func (s *Store) CourseSubjects() []models.CourseSubject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CourseSubject{}, s.courseSubjects...)
}

func (s *Store) Nuclei() []models.ProblematicNucleus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ProblematicNucleus{}, s.nuclei...)
}

func (s *Store) KnowledgeAreas() []models.KnowledgeArea {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.KnowledgeArea{}, s.knowledgeAreas...)
}

func (s *Store) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category{}, s.categories...)
}

func (s *Store) MomentTypes() []models.MomentType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.MomentType{}, s.momentTypes...)
}

func (s *Store) Activities() []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Activity{}, s.activities...)
}

func (s *Store) Documents() []models.CoordinationDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CoordinationDocument{}, s.documents...)
}

func (s *Store) Resources() []models.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Resource{}, s.resources...)
}

func (s *Store) Fonts() []models.Font {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Font{}, s.fonts...)
}

// UserRole derives the session role by linear scan on every call:
// coordinator if any area's coordinator matches the current user, else
// teacher if any course-subject's teacher matches, else none. Nothing is
// cached; the derivation always reflects the current collections.
func (s *Store) UserRole() models.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, area := range s.areas {
		if area.CoordinatorID != nil && *area.CoordinatorID == s.currentUser.ID {
			return models.RoleCoordinator
		}
	}
	for _, cs := range s.courseSubjects {
		if cs.TeacherID == s.currentUser.ID {
			return models.RoleTeacher
		}
	}
	return models.RoleNone
}

// UserArea returns the area coordinated by the current user, or nil.
// First match wins if the data violates the one-area rule.
func (s *Store) UserArea() *models.Area {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, area := range s.areas {
		if area.CoordinatorID != nil && *area.CoordinatorID == s.currentUser.ID {
			match := area
			return &match
		}
	}
	return nil
}

// Current-selection pointers.

func (s *Store) SetCurrentDocument(id *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentDocumentID = id
}

func (s *Store) CurrentDocument() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentDocumentID
}

func (s *Store) SetCurrentCourseSubject(id *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentCourseSubjectID = id
}

func (s *Store) CurrentCourseSubject() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentCourseSubjectID
}

func (s *Store) SetCurrentLessonPlan(id *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentLessonPlanID = id
}

func (s *Store) CurrentLessonPlan() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLessonPlanID
}

func (s *Store) SetCurrentResource(id *int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentResourceID = id
}

func (s *Store) CurrentResource() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentResourceID
}

// Document wizard actions. Each runs under the store lock so taxonomy
// reads and draft mutation are one atomic dispatch.

func (s *Store) DocumentWizard() wizard.DocumentDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDocumentDraft(s.documentDraft)
}

func (s *Store) UpdateDocumentWizard(update dto.DocumentWizardUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentDraft.Apply(update)
}

func (s *Store) ToggleWizardNucleus(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentDraft.ToggleNucleus(id, s.knowledgeAreas, s.categories)
}

func (s *Store) ToggleWizardCategory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentDraft.ToggleCategory(id, s.knowledgeAreas, s.categories)
}

func (s *Store) AssignWizardCategory(categoryID int64, subjectID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentDraft.Assign(categoryID, subjectID)
}

func (s *Store) AdvanceDocumentWizard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentDraft.Next()
}

func (s *Store) RewindDocumentWizard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentDraft.Back()
}

// DocumentWizardPayload validates submission preconditions and assembles
// the creation payload from the whole draft.
func (s *Store) DocumentWizardPayload() (dto.CreateDocumentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.documentDraft.CanSubmit(); err != nil {
		return dto.CreateDocumentRequest{}, err
	}
	return s.documentDraft.Payload(s.subjects), nil
}

// ResetDocumentWizard restores the initial draft literal.
func (s *Store) ResetDocumentWizard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentDraft = wizard.NewDocumentDraft()
}

// Lesson wizard actions.

func (s *Store) LessonWizard() wizard.LessonDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLessonDraft(s.lessonDraft)
}

func (s *Store) UpdateLessonWizard(update dto.LessonWizardUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessonDraft.Apply(update)
}

// ToggleLessonWizardCategory restricts selection to the categories of the
// published document covering the draft's course-subject, when one is
// loaded; otherwise any category is accepted.
func (s *Store) ToggleLessonWizardCategory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessonDraft.ToggleCategory(id, s.documentCategoriesLocked())
}

func (s *Store) documentCategoriesLocked() []int64 {
	if s.currentDocumentID == nil {
		return nil
	}
	for _, doc := range s.documents {
		if doc.ID == *s.currentDocumentID {
			return append([]int64{}, doc.CategoryIDs...)
		}
	}
	return nil
}

func (s *Store) SetLessonWizardMoment(key string, activityIDs []int64, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessonDraft.SetMoment(key, activityIDs, notes)
}

func (s *Store) AdvanceLessonWizard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessonDraft.Next()
}

func (s *Store) RewindLessonWizard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessonDraft.Back()
}

func (s *Store) LessonWizardPayload() (dto.CreateLessonPlanRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lessonDraft.CanSubmit(); err != nil {
		return dto.CreateLessonPlanRequest{}, err
	}
	return s.lessonDraft.Payload(), nil
}

// ResetLessonWizard restores the initial draft literal.
func (s *Store) ResetLessonWizard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessonDraft = wizard.NewLessonDraft()
}

// Chat transcripts. The two sequences are independent; messages never
// cross from one to the other.

func (s *Store) AppendDocumentChat(msg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentChat = append(s.documentChat, msg)
}

func (s *Store) DocumentChat() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage{}, s.documentChat...)
}

func (s *Store) ClearDocumentChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documentChat = nil
}

func (s *Store) AppendLessonChat(msg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessonChat = append(s.lessonChat, msg)
}

func (s *Store) LessonChat() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage{}, s.lessonChat...)
}

func (s *Store) ClearLessonChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessonChat = nil
}

func cloneDocumentDraft(d wizard.DocumentDraft) wizard.DocumentDraft {
	clone := d
	clone.NucleusIDs = append([]int64{}, d.NucleusIDs...)
	clone.CategoryIDs = append([]int64{}, d.CategoryIDs...)
	clone.Assignments = make(map[int64][]int64, len(d.Assignments))
	for subjectID, assigned := range d.Assignments {
		clone.Assignments[subjectID] = append([]int64{}, assigned...)
	}
	return clone
}

func cloneLessonDraft(d wizard.LessonDraft) wizard.LessonDraft {
	clone := d
	clone.CategoryIDs = append([]int64{}, d.CategoryIDs...)
	clone.Moments = make(map[string]models.Moment, len(d.Moments))
	for key, moment := range d.Moments {
		clone.Moments[key] = models.Moment{
			ActivityIDs: append([]int64{}, moment.ActivityIDs...),
			Notes:       moment.Notes,
		}
	}
	return clone
}
