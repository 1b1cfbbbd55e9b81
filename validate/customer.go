package validate

import (
	"fmt"
	"hearthroot_shop/model"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidEmail(email string) bool {
	const emailRegex = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	re := regexp.MustCompile(emailRegex)
	return re.MatchString(email)
}

func isValidPhone(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	if strings.HasPrefix(phone, "+") {
		phone = phone[1:]
	}
	if len(phone) < 7 || len(phone) > 15 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func RegisterCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterCustomerInput

		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}
		if input.Email == "" || !isValidEmail(input.Email) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "A valid email is required",
				"field": "email",
			})
		}
		if input.Phone == "" || !isValidPhone(input.Phone) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "A valid phone number is required",
				"field": "phone",
			})
		}
		if len(input.Password) < 6 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Password must be at least 6 characters",
				"field": "password",
			})
		}

		c.Locals("RegisterCustomer", input)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return body[model.LoginInput]("Login")
}

func ForgotPassword() fiber.Handler {
	return body[model.ForgotPasswordRequest]("ForgotPassword")
}

func ResetPassword() fiber.Handler {
	return body[model.ResetPasswordRequest]("ResetPassword")
}
