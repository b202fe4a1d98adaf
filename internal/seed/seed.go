package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/shift-planner/backend/internal/domain"
	"github.com/shift-planner/backend/internal/repository"
	"github.com/shift-planner/backend/internal/scheduling"
	"github.com/shift-planner/backend/internal/utils"
)

// sample windows an employee might plausibly declare; all satisfy the
// 4 hour minimum
var sampleWindows = []struct {
	start string
	end   string
}{
	{"06:00", "14:00"},
	{"08:00", "16:00"},
	{"09:00", "17:00"},
	{"12:00", "20:00"},
	{"14:00", "22:00"},
	{"22:00", "06:00"}, // overnight
}

var sampleTimezones = []string{
	"UTC", "America/New_York", "Europe/Berlin", "Asia/Shanghai", "Australia/Sydney",
}

// Users inserts n random employee accounts sharing the given password.
func Users(repo *repository.Repository, n int, password string) []*domain.User {
	users := make([]*domain.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password)
		if err != nil {
			slog.Error("failed to generate random user", "error", err)
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to insert user", "error", err)
			continue
		}
		users = append(users, user)
	}

	slog.Info("users seeded", "count", len(users))
	return users
}

// Schedules declares availability windows for the coming week for each
// user, and assigns a shift inside roughly half of them. Everything goes
// through the validators so seeded data obeys the same invariants as data
// written through the API.
func Schedules(repo *repository.Repository, users []*domain.User, minAvailability time.Duration) {
	availabilityValidator, shiftValidator := scheduling.NewValidators(repo, minAvailability)

	availabilityCnt, shiftCnt := 0, 0
	today := time.Now().UTC()

	for _, user := range users {
		tz := sampleTimezones[rand.Intn(len(sampleTimezones))]

		for day := 1; day <= 7; day++ {
			if rand.Intn(3) == 0 {
				continue // not every employee declares every day
			}

			date := today.AddDate(0, 0, day).Format("2006-01-02")
			window := sampleWindows[rand.Intn(len(sampleWindows))]

			availability, err := availabilityValidator.Create(context.Background(), scheduling.IntervalInput{
				OwnerID:   user.ID,
				Date:      date,
				StartTime: window.start,
				EndTime:   window.end,
				Timezone:  tz,
			})
			if err != nil {
				slog.Error("failed to seed availability", "user", user.Username, "date", date, "error", err)
				continue
			}
			availabilityCnt++

			if rand.Intn(2) == 0 {
				continue
			}

			// a shift covering the middle of the window
			shiftStart := availability.Start.Add(time.Hour)
			shiftEnd := availability.End.Add(-time.Hour)
			loc, err := time.LoadLocation(tz)
			if err != nil {
				continue
			}

			_, err = shiftValidator.Create(context.Background(), scheduling.IntervalInput{
				OwnerID:   user.ID,
				Date:      date,
				StartTime: shiftStart.In(loc).Format("15:04"),
				EndTime:   shiftEnd.In(loc).Format("15:04"),
				Timezone:  tz,
			})
			if err != nil {
				slog.Error("failed to seed shift", "user", user.Username, "date", date, "error", err)
				continue
			}
			shiftCnt++
		}
	}

	slog.Info("schedules seeded", "availabilities", availabilityCnt, "shifts", shiftCnt)
}

// Summary prints seeded account names so they can be used to log in.
func Summary(users []*domain.User) {
	for _, user := range users {
		fmt.Printf("%s\t%s\t%s\n", user.Username, user.FullName, user.Email)
	}
}
