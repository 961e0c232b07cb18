package routes

import (
	"net/http"

	"github.com/SMT2501/kasiBeats/auth"
	"github.com/SMT2501/kasiBeats/booking"
	"github.com/SMT2501/kasiBeats/comments"
	"github.com/SMT2501/kasiBeats/events"
	"github.com/SMT2501/kasiBeats/feed"
	"github.com/SMT2501/kasiBeats/middleware"
	"github.com/SMT2501/kasiBeats/notifications"
	"github.com/SMT2501/kasiBeats/pay"
	"github.com/SMT2501/kasiBeats/profile"
	"github.com/SMT2501/kasiBeats/ratelim"
	"github.com/SMT2501/kasiBeats/tickets"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
	router.ServeFiles("/static/eventpic/*filepath", http.Dir("static/eventpic"))
	router.ServeFiles("/static/postpic/*filepath", http.Dir("static/postpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.EditProfile))
	router.PUT("/api/profile/fcm-token", middleware.Authenticate(profile.RegisterFCMToken))
	router.GET("/api/users/:userid", profile.GetUserProfile)
	router.GET("/api/djs", profile.GetDJs)
}

func AddEventsRoutes(router *httprouter.Router) {
	router.POST("/api/events", middleware.Authenticate(events.CreateEvent))
	router.GET("/api/events", events.GetEvents)
	router.GET("/api/events/:eventid", events.GetEvent)
	router.PUT("/api/events/:eventid", middleware.Authenticate(events.EditEvent))
	router.DELETE("/api/events/:eventid", middleware.Authenticate(events.DeleteEvent))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", middleware.Authenticate(booking.CreateBooking))
	router.POST("/api/bookings/request", middleware.Authenticate(booking.RequestBooking))
	router.GET("/api/bookings", middleware.Authenticate(booking.GetBookings))
	router.PUT("/api/bookings/:bookingid/accept", middleware.Authenticate(booking.AcceptBooking))
	router.PUT("/api/bookings/:bookingid/reject", middleware.Authenticate(booking.RejectBooking))
	router.PUT("/api/bookings/:bookingid/pay", middleware.Authenticate(booking.MarkBookingPaid))
	router.DELETE("/api/bookings/:bookingid", middleware.Authenticate(booking.CancelBooking))
	router.GET("/api/earnings", middleware.Authenticate(booking.GetEarnings))
	router.GET("/api/availability", booking.CheckAvailability)
	router.GET("/api/calendar", middleware.Authenticate(booking.GetCalendar))
	router.GET("/ws/events/:eventid/bookings", middleware.Authenticate(booking.HandleWS))
}

func AddTicketRoutes(router *httprouter.Router) {
	router.GET("/api/tickets", middleware.Authenticate(tickets.GetMyTickets))
	router.GET("/api/tickets/:ticketid/print", middleware.Authenticate(tickets.PrintTicket))
	router.POST("/api/tickets/verify", middleware.Authenticate(tickets.VerifyTicket))
}

func AddPayRoutes(router *httprouter.Router) {
	router.POST("/api/pay/checkout-session", middleware.Authenticate(pay.CreateCheckoutSession))
	router.POST("/api/pay/success", middleware.Authenticate(pay.PaymentSuccess))
}

func AddNotificationRoutes(router *httprouter.Router) {
	router.GET("/api/notifications", middleware.Authenticate(notifications.GetNotifications))
	router.PUT("/api/notifications", middleware.Authenticate(notifications.MarkAllNotificationsRead))
	router.PUT("/api/notifications/:notifid/read", middleware.Authenticate(notifications.MarkNotificationRead))
}

func AddFeedRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/posts", rl.Limit(middleware.Authenticate(feed.CreatePost)))
	router.GET("/api/posts", feed.GetPosts)
	router.GET("/api/posts/:postid", feed.GetPost)
	router.DELETE("/api/posts/:postid", middleware.Authenticate(feed.DeletePost))
	router.POST("/api/posts/:postid/like", middleware.Authenticate(feed.LikePost))
	router.DELETE("/api/posts/:postid/like", middleware.Authenticate(feed.UnlikePost))
	router.POST("/api/posts/:postid/comments", middleware.Authenticate(comments.AddComment))
	router.GET("/api/posts/:postid/comments", comments.GetComments)
	router.DELETE("/api/comments/:commentid", middleware.Authenticate(comments.DeleteComment))
}
