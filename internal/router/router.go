package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/minglangedu/website/config"
	"github.com/minglangedu/website/internal/handler"
	"github.com/minglangedu/website/internal/middleware"
	authservice "github.com/minglangedu/website/internal/service/auth"
	contactservice "github.com/minglangedu/website/internal/service/contact"
	courseservice "github.com/minglangedu/website/internal/service/course"
	galleryservice "github.com/minglangedu/website/internal/service/gallery"
	storageservice "github.com/minglangedu/website/internal/service/storage"
)

// Router 路由配置
type Router struct {
	engine *gin.Engine
	db     *gorm.DB
}

// NewRouter 创建路由实例
// 在这里完成服务、处理器和中间件的组装
func NewRouter(loggerMiddleware *middleware.LoggerMiddleware, db *gorm.DB, cfg *config.Config) (*Router, error) {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	// 初始化服务
	storageService, err := storageservice.NewStorageService(cfg.File)
	if err != nil {
		return nil, err
	}
	authService := authservice.NewAuthService(db)
	courseService := courseservice.NewCourseService(db, storageService)
	galleryService := galleryservice.NewGalleryService(db, storageService)
	contactService := contactservice.NewContactService(db)

	// 初始化处理器
	siteHandler := handler.NewSiteHandler(courseService, galleryService)
	contactHandler := handler.NewContactHandler(contactService)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(courseService, galleryService, contactService)
	courseHandler := handler.NewCourseHandler(courseService)
	galleryHandler := handler.NewGalleryHandler(galleryService)

	// 使用中间件
	engine.Use(gin.Recovery())
	engine.Use(loggerMiddleware.Logger())

	// Cookie会话，承载管理员标记和flash消息
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions("website_session", store))

	// 配置CORS
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// HTML模板与上传文件静态目录
	engine.LoadHTMLGlob(cfg.Server.TemplatesGlob)
	engine.Static("/uploads", cfg.File.StoragePath)

	// 健康检查
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Service is running",
		})
	})

	// 公开页面
	engine.GET("/", siteHandler.Home)
	engine.GET("/about", siteHandler.About)
	engine.GET("/course", siteHandler.Courses)
	engine.GET("/gallery", siteHandler.Gallery)
	engine.GET("/contact", contactHandler.ShowForm)
	engine.POST("/contact", contactHandler.Submit)

	// 管理端登录登出不受会话守卫保护
	engine.GET("/admin/login", authHandler.ShowLogin)
	engine.POST("/admin/login", authHandler.Login)
	engine.GET("/admin/logout", authHandler.Logout)

	// 管理端路由组，全部要求管理员会话
	admin := engine.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/dashboard", adminHandler.Dashboard)
		admin.GET("/contact_messages", adminHandler.ContactMessages)

		// 课程管理
		admin.POST("/add_course", courseHandler.AddCourse)
		admin.GET("/delete_course/:id", courseHandler.DeleteCourse)
		admin.GET("/edit_course/:id", courseHandler.EditCourseForm)
		admin.POST("/edit_course/:id", courseHandler.EditCourse)
		admin.GET("/manage_courses", courseHandler.ManageCourses)
		admin.POST("/manage_courses", courseHandler.ManageCoursesCreate)

		// 相册管理
		admin.POST("/add_gallery", galleryHandler.AddItem)
		admin.GET("/delete_gallery/:id", galleryHandler.DeleteItem)
		admin.GET("/edit_gallery/:id", galleryHandler.EditItemForm)
		admin.POST("/edit_gallery/:id", galleryHandler.EditItem)
		admin.GET("/manage_gallery", galleryHandler.ManageGallery)
		admin.POST("/manage_gallery", galleryHandler.ManageGalleryCreate)
	}

	return &Router{
		engine: engine,
		db:     db,
	}, nil
}

// GetEngine 获取Gin引擎
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetDB 获取数据库连接
func (r *Router) GetDB() *gorm.DB {
	return r.db
}
