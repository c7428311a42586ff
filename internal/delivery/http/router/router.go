package router

import (
	"github.com/gin-gonic/gin"

	"github.com/profilematch/backend/internal/config"
	"github.com/profilematch/backend/internal/delivery/http/handler"
	"github.com/profilematch/backend/internal/delivery/http/middleware"
	"github.com/profilematch/backend/internal/pkg/logger"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Attribute *handler.AttributeHandler
	Ego       *handler.EgoHandler
	Team      *handler.TeamHandler
	Interest  *handler.InterestHandler
}

// Setup builds the engine with all routes mounted under /api/v1.
// Reads are public; mutations sit behind the auth middleware.
func Setup(cfg *config.Config, log *logger.Logger, h Handlers) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLog(log))
	engine.Use(middleware.CORS(cfg.CORS))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(cfg.JWT.Secret)
	v1 := engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", requireAuth, h.Auth.Me)
	}

	profile := v1.Group("/profile")
	{
		dictionaries := profile.Group("/dictionaries")
		{
			dictionaries.GET("/genders", h.Profile.Genders)
			dictionaries.GET("/regions", h.Profile.Regions)
			dictionaries.GET("/occupations", h.Profile.Occupations)
			dictionaries.GET("/education-levels", h.Profile.EducationLevels)
			dictionaries.GET("/relationship-statuses", h.Profile.RelationshipStatuses)
		}

		profile.GET("/search", h.Profile.SearchProfiles)
		profile.GET("/:user_id", h.Profile.GetProfile)
		profile.POST("/:user_id", requireAuth, h.Profile.CreateProfile)
		profile.PUT("/:user_id", requireAuth, h.Profile.UpdateProfile)
		profile.DELETE("/:user_id", requireAuth, h.Profile.DeleteProfile)
	}

	attributes := v1.Group("/attributes")
	{
		attributes.GET("/categories/tree", h.Attribute.CategoryTree)
		attributes.GET("/categories/:category_id/subcategories", h.Attribute.Subcategories)
		attributes.GET("/categories/:category_id/attributes", h.Attribute.CategoryAttributes)
		attributes.GET("/search", h.Attribute.Search)
		attributes.GET("/popular", h.Attribute.Popular)

		attributes.GET("/user/:user_id", h.Attribute.ListUserAttributes)
		attributes.POST("/user/:user_id", requireAuth, h.Attribute.Associate)
		attributes.PUT("/user/:user_id/:attribute_id", requireAuth, h.Attribute.UpdateAssociation)
		attributes.DELETE("/user/:user_id/:attribute_id", requireAuth, h.Attribute.RemoveAssociation)
	}

	ego := v1.Group("/ego")
	{
		ego.GET("/cognitive-functions", h.Ego.ListFunctions)
		ego.GET("/trait-categories", h.Ego.TraitCategories)
		ego.GET("/trait-value-types", h.Ego.TraitValueTypes)
		ego.GET("/personality-traits", h.Ego.ListTraits)

		ego.GET("/cognitive-functions/:user_id", h.Ego.ListScores)
		ego.GET("/cognitive-functions/:user_id/distribution", h.Ego.Distribution)
		ego.POST("/cognitive-functions/:user_id", requireAuth, h.Ego.RecordScore)
		ego.PUT("/cognitive-functions/:user_id/:function_id", requireAuth, h.Ego.UpdateScore)
		ego.DELETE("/cognitive-functions/:user_id/:function_id", requireAuth, h.Ego.DeleteScore)

		ego.GET("/personality-traits/:user_id", h.Ego.ListTraitValues)
		ego.POST("/personality-traits/:user_id", requireAuth, h.Ego.RecordTraitValue)
		ego.PUT("/personality-traits/:user_id/:trait_id", requireAuth, h.Ego.UpdateTraitValue)
		ego.DELETE("/personality-traits/:user_id/:trait_id", requireAuth, h.Ego.DeleteTraitValue)
	}

	teams := v1.Group("/teams", requireAuth)
	{
		teams.GET("/events", h.Team.ListEvents)
		teams.POST("/events/:event_id/join", h.Team.JoinEvent)
		teams.POST("/create", h.Team.CreateTeam)
		teams.POST("/join/:team_id", h.Team.JoinTeam)
		teams.POST("/leave", h.Team.LeaveTeam)
		teams.GET("/members", h.Team.MyTeam)
		teams.GET("/:team_id/members", h.Team.TeamMembers)

		teams.GET("/skills/all", h.Team.ListSkills)
		teams.GET("/skills", h.Team.MySkills)
		teams.POST("/skills", h.Team.SetSkills)

		teams.GET("/posts", h.Team.ListPosts)
		teams.POST("/posts", h.Team.CreatePost)
		teams.PATCH("/posts/:post_id", h.Team.UpdatePost)
		teams.DELETE("/posts/:post_id", h.Team.DeletePost)

		teams.GET("/users", h.Team.ListUsers)

		teams.GET("/recommendations", h.Team.ListRecommendations)
		teams.PATCH("/recommendations/:recommendation_id", h.Team.RespondRecommendation)
	}

	v1.GET("/interests", h.Interest.ListInterests)
	v1.GET("/interests/categories/:category", h.Interest.ListByCategory)
	v1.GET("/users/:user_id/interests", h.Interest.UserInterests)
	v1.PUT("/users/:user_id/interests", requireAuth, h.Interest.SetUserInterests)

	return engine
}
