package calendar

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	ics "github.com/arran4/golang-ical"
)

const defaultDuration = time.Hour

// ExportEventsToICS renders the events of a club as an iCalendar feed.
//
// Every event becomes a VEVENT with a stable uid, so calendar apps update the
// entry in place when the feed is re-fetched. Events without an end time last
// one hour. Two display alarms fire a day and an hour before the start.
func ExportEventsToICS(clubName string, events []entity.Event, now time.Time) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//CU Clubs Web//EN")
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetName(clubName)

	for _, event := range events {
		e := cal.AddEvent(fmt.Sprintf("%s@cu-clubs-web", event.ID))
		e.SetDtStampTime(now)
		e.SetCreatedTime(event.CreatedAt)
		e.SetModifiedAt(event.UpdatedAt)

		e.SetStartAt(event.StartTime)
		if !event.EndTime.IsZero() {
			e.SetEndAt(event.EndTime)
		} else {
			e.SetEndAt(event.StartTime.Add(defaultDuration))
		}

		e.SetSummary(event.Name)
		e.SetDescription(event.Description)
		e.SetLocation(event.Location)
		if len(event.Tags) > 0 {
			e.AddProperty(ics.ComponentPropertyCategories, strings.Join(event.Tags, ","))
		}
		e.SetStatus(ics.ObjectStatusConfirmed)
		e.SetTimeTransparency(ics.TransparencyOpaque)
		e.SetClass(ics.ClassificationPublic)
		e.SetSequence(0)

		dayAlarm := e.AddAlarm()
		dayAlarm.SetAction(ics.ActionDisplay)
		dayAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-P1D")
		dayAlarm.SetDescription(fmt.Sprintf("Tomorrow: %s", event.Name))

		hourAlarm := e.AddAlarm()
		hourAlarm.SetAction(ics.ActionDisplay)
		hourAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-PT1H")
		hourAlarm.SetDescription(fmt.Sprintf("In an hour: %s", event.Name))
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}
	return buf.Bytes(), nil
}
