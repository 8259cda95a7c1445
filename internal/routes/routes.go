package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointease/internal/audit"
	"github.com/BruksfildServices01/appointease/internal/config"
	"github.com/BruksfildServices01/appointease/internal/export"
	"github.com/BruksfildServices01/appointease/internal/handlers"
	infraRepo "github.com/BruksfildServices01/appointease/internal/infra/repository"
	"github.com/BruksfildServices01/appointease/internal/middleware"
	"github.com/BruksfildServices01/appointease/internal/models"
	"github.com/BruksfildServices01/appointease/internal/notify"
	"github.com/BruksfildServices01/appointease/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/appointease/internal/usecase/appointment"
	ucMeeting "github.com/BruksfildServices01/appointease/internal/usecase/meeting"
	ucMessage "github.com/BruksfildServices01/appointease/internal/usecase/message"
	ucSettings "github.com/BruksfildServices01/appointease/internal/usecase/settings"
	ucUser "github.com/BruksfildServices01/appointease/internal/usecase/user"
)

// Deps are the process-wide singletons the routes are built from. Archiver
// may be nil.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      zerolog.Logger
	Audit    *audit.Dispatcher
	Events   notify.Publisher
	Hub      *notify.Hub
	Archiver export.Archiver
	Now      func() time.Time
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.Origins()))

	now := d.Now
	if now == nil {
		now = timezone.NowFunc(d.Config.Timezone)
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	meetingRepo := infraRepo.NewMeetingGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	messageRepo := infraRepo.NewMessageGormRepository(d.DB)
	auditLogger := audit.New(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	// Dispatch is nil-safe, so a nil dispatcher simply disables auditing
	apDeps := ucAppointment.Deps{Repo: appointmentRepo, Audit: d.Audit, Events: d.Events, Now: now}
	meetingDeps := ucMeeting.Deps{Repo: meetingRepo, Audit: d.Audit, Events: d.Events, Now: now}
	userDeps := ucUser.Deps{Repo: userRepo, Audit: d.Audit, Events: d.Events, Now: now}
	messageDeps := ucMessage.Deps{Repo: messageRepo, Users: userRepo, Events: d.Events, Now: now}

	tokens := ucUser.Tokens{Secret: d.Config.JWTSecret}
	updateHours := ucSettings.NewUpdateWorkingHours(appointmentRepo, d.Audit, d.Events)
	updateHours.Now = now

	dashboard := ucAppointment.NewDashboard(apDeps, userRepo, meetingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		ucUser.NewSignup(userDeps, tokens),
		ucUser.NewLogin(userDeps, tokens),
		d.Log,
	)

	meHandler := handlers.NewMeHandler(
		ucUser.NewGetProfile(userDeps),
		ucUser.NewUpdateProfile(userDeps),
		dashboard,
		d.Log,
	)

	workingHoursHandler := handlers.NewWorkingHoursHandler(
		ucSettings.NewGetWorkingHours(appointmentRepo),
		updateHours,
		d.Log,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewGetAvailability(apDeps),
		ucAppointment.NewSubmitBooking(apDeps),
		ucAppointment.NewDecideAppointment(apDeps),
		ucAppointment.NewListAppointments(apDeps),
		ucAppointment.NewRequestReschedule(apDeps),
		ucAppointment.NewAdminReschedule(apDeps),
		d.Log,
	)

	rescheduleHandler := handlers.NewRescheduleHandler(
		ucAppointment.NewListRescheduleRequests(apDeps),
		ucAppointment.NewResolveReschedule(apDeps),
		d.Log,
	)

	meetingHandler := handlers.NewMeetingHandler(
		ucMeeting.NewCreateMeeting(meetingDeps),
		ucMeeting.NewUpdateMeeting(meetingDeps),
		ucMeeting.NewDeleteMeeting(meetingDeps),
		ucMeeting.NewListMeetings(meetingDeps),
		d.Log,
	)

	messageHandler := handlers.NewMessageHandler(
		ucMessage.NewSendMessage(messageDeps),
		ucMessage.NewListMessages(messageDeps),
		ucMessage.NewMarkSeen(messageDeps),
		d.Log,
	)

	userHandler := handlers.NewUserHandler(
		ucUser.NewListUsers(userDeps, appointmentRepo),
		ucUser.NewCreateUser(userDeps),
		ucUser.NewUpdateUser(userDeps),
		d.Log,
	)

	exportHandler := handlers.NewExportHandler(
		ucAppointment.NewExportWorkbook(apDeps, meetingRepo, d.Archiver, d.Log),
		d.Log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger, d.Log)
	eventsHandler := handlers.NewEventsHandler(d.Hub, d.Log)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.GET("/me/dashboard", meHandler.Dashboard)

			secured.GET("/settings/working-hours", workingHoursHandler.Get)
			secured.GET("/availability", appointmentHandler.Availability)

			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.POST("/me/appointments/:id/reschedule-requests", appointmentHandler.RequestReschedule)

			secured.GET("/me/meetings", meetingHandler.ListMine)

			secured.GET("/me/messages", messageHandler.ListMine)
			secured.POST("/me/messages", messageHandler.Send)
			secured.POST("/me/messages/seen", messageHandler.MarkSeen)

			secured.GET("/events", eventsHandler.Stream)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(
			middleware.AuthMiddleware(d.Config.JWTSecret),
			middleware.RequireRole(models.RoleAdmin),
		)
		{
			admin.PUT("/settings/working-hours", workingHoursHandler.Update)

			admin.GET("/appointments", appointmentHandler.AdminList)
			admin.PATCH("/appointments/:id/approve", appointmentHandler.Approve)
			admin.PATCH("/appointments/:id/reject", appointmentHandler.Reject)
			admin.PATCH("/appointments/:id/reschedule", appointmentHandler.AdminReschedule)

			admin.GET("/reschedule-requests", rescheduleHandler.List)
			admin.PATCH("/reschedule-requests/:id/approve", rescheduleHandler.Approve)
			admin.PATCH("/reschedule-requests/:id/reject", rescheduleHandler.Reject)

			admin.GET("/meetings", meetingHandler.List)
			admin.POST("/meetings", meetingHandler.Create)
			admin.PUT("/meetings/:id", meetingHandler.Update)
			admin.DELETE("/meetings/:id", meetingHandler.Delete)

			admin.GET("/users", userHandler.List)
			admin.POST("/users", userHandler.Create)
			admin.PATCH("/users/:id", userHandler.Update)

			admin.GET("/messages", messageHandler.Conversations)
			admin.GET("/messages/:userId", messageHandler.Thread)
			admin.POST("/messages/:userId", messageHandler.Reply)

			admin.GET("/dashboard", meHandler.AdminDashboard)
			admin.GET("/export", exportHandler.Download)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
