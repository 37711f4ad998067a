package iof

import "github.com/beevik/etree"

// PersonResult is one competitor's result within a class. Only the
// competitor and the did-not-start flag matter for billing; a DNS
// runner is still billable.
type PersonResult struct {
	Competitor Competitor
	DNS        bool
}

// DecodePersonResult reads a PersonResult element. For multi-day
// events the Result element is buried inside a RaceResult wrapper, so
// the status lookup descends one extra level when present.
func DecodePersonResult(el *etree.Element) (PersonResult, error) {
	person := el.SelectElement("Person")
	if person == nil {
		return PersonResult{}, fieldErr(el, "Person")
	}
	competitor, err := DecodeCompetitor(person)
	if err != nil {
		return PersonResult{}, err
	}

	parent := el
	if raceResult := el.SelectElement("RaceResult"); raceResult != nil {
		parent = raceResult
	}
	result := parent.SelectElement("Result")
	if result == nil {
		return PersonResult{}, fieldErr(parent, "Result")
	}
	status := result.SelectElement("CompetitorStatus")
	if status == nil {
		return PersonResult{}, fieldErr(result, "CompetitorStatus")
	}

	return PersonResult{
		Competitor: competitor,
		DNS:        status.SelectAttrValue("value", "") == "DidNotStart",
	}, nil
}

// ClassResult groups the person results of one class/race combination
// within a results document.
type ClassResult struct {
	EventClassID  uint64
	EventRaceID   uint64
	PersonResults []PersonResult
}

// DecodeClassResult reads a ClassResult element: the class and race
// ids from the nested EventClass/ClassRaceInfo records, plus any
// PersonResult children.
func DecodeClassResult(el *etree.Element) (ClassResult, error) {
	eventClass := el.SelectElement("EventClass")
	if eventClass == nil {
		return ClassResult{}, fieldErr(el, "EventClass")
	}
	classID, err := requireUint(eventClass, "EventClassId")
	if err != nil {
		return ClassResult{}, err
	}
	raceInfo := eventClass.SelectElement("ClassRaceInfo")
	if raceInfo == nil {
		return ClassResult{}, fieldErr(eventClass, "ClassRaceInfo")
	}
	raceID, err := requireUint(raceInfo, "EventRaceId")
	if err != nil {
		return ClassResult{}, err
	}

	personResults, err := Children(el, "PersonResult", DecodePersonResult)
	if err != nil {
		return ClassResult{}, err
	}

	return ClassResult{
		EventClassID:  classID,
		EventRaceID:   raceID,
		PersonResults: personResults,
	}, nil
}
