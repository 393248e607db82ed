package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ifag/portal/core/schedule"
	"github.com/ifag/portal/core/student"
)

type (
	studentApi struct {
		service student.Service
	}

	notesPage struct {
		Student      student.Profile      `json:"student"`
		NotesSummary student.NotesSummary `json:"notes_summary"`
	}

	absencesPage struct {
		Student         student.Profile         `json:"student"`
		AbsencesCount   student.AbsencesSummary `json:"absences_count"`
		AbsencesHistory []student.AbsenceRecord `json:"absences_history"`
	}

	schedulePage struct {
		Student  student.Profile `json:"student"`
		Schedule []schedule.Slot `json:"schedule"`
	}

	profilePage struct {
		Student          student.Profile          `json:"student"`
		AcademicProgress student.AcademicProgress `json:"academic_progress"`
	}
)

func registerStudentAPI(router *echo.Group, jwt echo.MiddlewareFunc, svc student.Service) {
	api := studentApi{service: svc}

	g := router.Group("/students/:id", jwt, studentAccessMiddleware)
	g.GET("/dashboard", api.dashboard)
	g.GET("/notes", api.notes)
	g.GET("/absences", api.absences)
	g.GET("/schedule", api.schedule)
	g.GET("/profile", api.profile)
}

func (api studentApi) load(ctx echo.Context) (student.Dashboard, error) {
	id, err := getContextStudentID(ctx)
	if err != nil {
		return student.Dashboard{}, err
	}
	dash, err := api.service.GetDashboard(ctx.Request().Context(), id)
	if err != nil {
		return student.Dashboard{}, loadErr("dashboard", err)
	}
	return dash, nil
}

func (api studentApi) dashboard(ctx echo.Context) error {
	dash, err := api.load(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, dash)
}

func (api studentApi) notes(ctx echo.Context) error {
	dash, err := api.load(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, notesPage{Student: dash.Student, NotesSummary: dash.NotesSummary})
}

func (api studentApi) absences(ctx echo.Context) error {
	dash, err := api.load(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, absencesPage{
		Student:         dash.Student,
		AbsencesCount:   dash.AbsencesCount,
		AbsencesHistory: dash.AbsencesHistory,
	})
}

func (api studentApi) schedule(ctx echo.Context) error {
	dash, err := api.load(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, schedulePage{Student: dash.Student, Schedule: dash.Schedule})
}

func (api studentApi) profile(ctx echo.Context) error {
	dash, err := api.load(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, profilePage{Student: dash.Student, AcademicProgress: dash.AcademicProgress})
}
