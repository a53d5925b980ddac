package http

import (
	"sync"

	"github.com/gofiber/fiber/v2"
)

// SerializeRequests atiende una petición a la vez. Los stores de archivos no tienen
// bloqueo propio y asumen llamadas secuenciales, como en la aplicación de escritorio.
func SerializeRequests() fiber.Handler {
	var mu sync.Mutex
	return func(c *fiber.Ctx) error {
		mu.Lock()
		defer mu.Unlock()
		return c.Next()
	}
}
