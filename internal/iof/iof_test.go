package iof

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func TestDecodeDate(t *testing.T) {
	d, err := DecodeDate(parse(t, `<RaceDate><Date>2023-04-01</Date></RaceDate>`))
	require.NoError(t, err)
	assert.Equal(t, Date(20230401), d)

	_, err = DecodeDate(parse(t, `<RaceDate><Clock>10:00</Clock></RaceDate>`))
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = DecodeDate(parse(t, `<RaceDate><Date>first of april</Date></RaceDate>`))
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestYearFromDate(t *testing.T) {
	year, ok := YearFromDate("2023-04-01")
	require.True(t, ok)
	assert.Equal(t, uint64(2023), year)

	year, ok = YearFromDate("1999")
	require.True(t, ok)
	assert.Equal(t, uint64(1999), year)

	_, ok = YearFromDate("99")
	assert.False(t, ok)

	_, ok = YearFromDate("yyyy-mm-dd")
	assert.False(t, ok)
}

func TestDecodeCompetitor(t *testing.T) {
	c, err := DecodeCompetitor(parse(t, `
		<Person>
			<PersonId>7</PersonId>
			<PersonName><Given>Anna</Given><Family>Svensson</Family></PersonName>
			<BirthDate><Date>2000-05-01</Date></BirthDate>
		</Person>`))
	require.NoError(t, err)
	require.NotNil(t, c.ID)
	assert.Equal(t, uint64(7), *c.ID)
	assert.Equal(t, "Anna", c.Given)
	assert.Equal(t, "Svensson", c.Family)
	require.NotNil(t, c.BirthYear)
	assert.Equal(t, uint64(2000), *c.BirthYear)
}

func TestDecodeCompetitorMinimal(t *testing.T) {
	c, err := DecodeCompetitor(parse(t, `
		<Person>
			<PersonName><Given>Erik</Given><Family>Berg</Family></PersonName>
		</Person>`))
	require.NoError(t, err)
	assert.Nil(t, c.ID)
	assert.Nil(t, c.BirthYear)
}

func TestDecodeCompetitorMissingName(t *testing.T) {
	_, err := DecodeCompetitor(parse(t, `<Person><PersonId>7</PersonId></Person>`))
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "PersonName")

	_, err = DecodeCompetitor(parse(t, `
		<Person><PersonName><Given>Anna</Given></PersonName></Person>`))
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "Family")
}

func TestCompetitorMatching(t *testing.T) {
	id := uint64(7)
	year := uint64(2000)
	withID := Competitor{ID: &id, Given: "Anna", Family: "Svensson", BirthYear: &year}
	withoutID := Competitor{Given: "Anna", Family: "Svensson"}
	other := Competitor{Given: "Anna", Family: "Bergström"}

	assert.True(t, withID.Equal(withID))
	assert.False(t, withID.Equal(withoutID))
	assert.True(t, withID.ProbablySame(withoutID))
	assert.False(t, withID.ProbablySame(other))
}

func TestDecodeEntryFee(t *testing.T) {
	fee, err := DecodeEntryFee(parse(t, `
		<EntryFee valueOperator="fixed">
			<EntryFeeId>1</EntryFeeId>
			<Name>Ordinarie</Name>
			<Amount>100</Amount>
			<FromDateOfBirth><Date>1990-01-01</Date></FromDateOfBirth>
			<ToDateOfBirth><Date>2005-12-31</Date></ToDateOfBirth>
		</EntryFee>`))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), fee.ID)
	assert.Equal(t, "Ordinarie", fee.Name)
	assert.Equal(t, 100.0, fee.Amount)
	assert.Equal(t, Fixed, fee.Operator)
	require.NotNil(t, fee.FromBirthYear)
	assert.Equal(t, uint64(1990), *fee.FromBirthYear)
	require.NotNil(t, fee.ToBirthYear)
	assert.Equal(t, uint64(2005), *fee.ToBirthYear)

	fee, err = DecodeEntryFee(parse(t, `
		<EntryFee valueOperator="percent">
			<EntryFeeId>2</EntryFeeId>
			<Name>Efteranmälan</Name>
			<Amount>50.5</Amount>
		</EntryFee>`))
	require.NoError(t, err)
	assert.Equal(t, Percent, fee.Operator)
	assert.Equal(t, 50.5, fee.Amount)
	assert.Nil(t, fee.FromBirthYear)
	assert.Nil(t, fee.ToBirthYear)
}

func TestDecodeEntryFeeInvalid(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"missing operator", `<EntryFee><EntryFeeId>1</EntryFeeId><Name>A</Name><Amount>10</Amount></EntryFee>`},
		{"bad operator", `<EntryFee valueOperator="absolute"><EntryFeeId>1</EntryFeeId><Name>A</Name><Amount>10</Amount></EntryFee>`},
		{"missing amount", `<EntryFee valueOperator="fixed"><EntryFeeId>1</EntryFeeId><Name>A</Name></EntryFee>`},
		{"malformed id", `<EntryFee valueOperator="fixed"><EntryFeeId>one</EntryFeeId><Name>A</Name><Amount>10</Amount></EntryFee>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEntryFee(parse(t, tt.xml))
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}
}

func TestDecodeEventClassOrdersFeesBySequence(t *testing.T) {
	ec, err := DecodeEventClass(parse(t, `
		<EventClass>
			<EventClassId>5</EventClassId>
			<ClassShortName>H21</ClassShortName>
			<ClassEntryFee><EntryFeeId>9</EntryFeeId><Sequence>3</Sequence></ClassEntryFee>
			<ClassEntryFee><EntryFeeId>4</EntryFeeId><Sequence>1</Sequence></ClassEntryFee>
			<ClassEntryFee><EntryFeeId>6</EntryFeeId><Sequence>2</Sequence></ClassEntryFee>
		</EventClass>`))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), ec.ID)
	assert.Equal(t, "H21", ec.ShortName)
	assert.Equal(t, []uint64{4, 6, 9}, ec.FeeIDs)
}

func TestDecodeEntry(t *testing.T) {
	entry, err := DecodeEntry(parse(t, `
		<Entry>
			<Competitor><PersonId>7</PersonId></Competitor>
			<EntryEntryFee><EntryFeeId>2</EntryFeeId><Sequence>2</Sequence></EntryEntryFee>
			<EntryEntryFee><EntryFeeId>1</EntryFeeId><Sequence>1</Sequence></EntryEntryFee>
		</Entry>`))
	require.NoError(t, err)
	assert.Equal(t, EntrantIndividual, entry.Entrant.Kind)
	assert.Equal(t, uint64(7), entry.Entrant.PersonID)
	assert.Equal(t, []uint64{1, 2}, entry.FeeIDs)

	id := uint64(7)
	otherID := uint64(8)
	assert.True(t, entry.IsForPerson(&id))
	assert.False(t, entry.IsForPerson(&otherID))
	assert.False(t, entry.IsForPerson(nil))
}

func TestDecodeEntrantVariants(t *testing.T) {
	entry, err := DecodeEntry(parse(t, `<Entry><Competitor/></Entry>`))
	require.NoError(t, err)
	assert.Equal(t, EntrantUnknown, entry.Entrant.Kind)

	entry, err = DecodeEntry(parse(t, `<Entry><TeamName>Lag 1</TeamName></Entry>`))
	require.NoError(t, err)
	assert.Equal(t, EntrantTeam, entry.Entrant.Kind)

	id := uint64(7)
	assert.False(t, entry.IsForPerson(&id))
}

func TestDecodeEvent(t *testing.T) {
	event, err := DecodeEvent(parse(t, `
		<Event>
			<EventId>11</EventId>
			<Name>Vårsprinten</Name>
			<EventRace><EventRaceId>99</EventRaceId><RaceDate><Date>2023-04-01</Date></RaceDate></EventRace>
			<EventRace><EventRaceId>100</EventRaceId><RaceDate><Date>2023-04-02</Date></RaceDate></EventRace>
		</Event>`))
	require.NoError(t, err)
	assert.Equal(t, uint64(11), event.ID)
	assert.Equal(t, "Vårsprinten", event.Name)
	require.Len(t, event.Races, 2)
	assert.Equal(t, Date(20230401), event.FirstRaceDate())

	date, err := event.DateForRace(100)
	require.NoError(t, err)
	assert.Equal(t, Date(20230402), date)

	_, err = event.DateForRace(101)
	assert.ErrorIs(t, err, ErrUnknownRace)
}

func TestChildrenAbortsOnMalformedChild(t *testing.T) {
	// The second race is missing its date: the whole list must fail,
	// not just that child.
	el := parse(t, `
		<Event>
			<EventRace><EventRaceId>1</EventRaceId><RaceDate><Date>2023-04-01</Date></RaceDate></EventRace>
			<EventRace><EventRaceId>2</EventRaceId></EventRace>
			<EventRace><EventRaceId>3</EventRaceId><RaceDate><Date>2023-04-03</Date></RaceDate></EventRace>
		</Event>`)
	races, err := Children(el, "EventRace", DecodeRace)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Nil(t, races)
}

func TestChildrenKeepsDocumentOrder(t *testing.T) {
	el := parse(t, `
		<Event>
			<EventRace><EventRaceId>3</EventRaceId><RaceDate><Date>2023-04-03</Date></RaceDate></EventRace>
			<Other/>
			<EventRace><EventRaceId>1</EventRaceId><RaceDate><Date>2023-04-01</Date></RaceDate></EventRace>
		</Event>`)
	races, err := Children(el, "EventRace", DecodeRace)
	require.NoError(t, err)
	require.Len(t, races, 2)
	assert.Equal(t, uint64(3), races[0].ID)
	assert.Equal(t, uint64(1), races[1].ID)
}

func TestDecodePersonResult(t *testing.T) {
	pr, err := DecodePersonResult(parse(t, `
		<PersonResult>
			<Person><PersonName><Given>Anna</Given><Family>Svensson</Family></PersonName></Person>
			<Result><CompetitorStatus value="OK"/></Result>
		</PersonResult>`))
	require.NoError(t, err)
	assert.False(t, pr.DNS)

	pr, err = DecodePersonResult(parse(t, `
		<PersonResult>
			<Person><PersonName><Given>Anna</Given><Family>Svensson</Family></PersonName></Person>
			<Result><CompetitorStatus value="DidNotStart"/></Result>
		</PersonResult>`))
	require.NoError(t, err)
	assert.True(t, pr.DNS)
}

func TestDecodePersonResultMultiDayNesting(t *testing.T) {
	// Multi-day events bury the Result inside a RaceResult wrapper.
	pr, err := DecodePersonResult(parse(t, `
		<PersonResult>
			<Person><PersonName><Given>Anna</Given><Family>Svensson</Family></PersonName></Person>
			<RaceResult>
				<Result><CompetitorStatus value="DidNotStart"/></Result>
			</RaceResult>
		</PersonResult>`))
	require.NoError(t, err)
	assert.True(t, pr.DNS)
}

func TestDecodePersonResultMissingStatus(t *testing.T) {
	_, err := DecodePersonResult(parse(t, `
		<PersonResult>
			<Person><PersonName><Given>Anna</Given><Family>Svensson</Family></PersonName></Person>
			<Result/>
		</PersonResult>`))
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "CompetitorStatus")
}

func TestDecodeClassResult(t *testing.T) {
	cr, err := DecodeClassResult(parse(t, `
		<ClassResult>
			<EventClass>
				<EventClassId>5</EventClassId>
				<ClassRaceInfo><EventRaceId>99</EventRaceId></ClassRaceInfo>
			</EventClass>
			<PersonResult>
				<Person><PersonName><Given>Anna</Given><Family>Svensson</Family></PersonName></Person>
				<Result><CompetitorStatus value="OK"/></Result>
			</PersonResult>
		</ClassResult>`))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), cr.EventClassID)
	assert.Equal(t, uint64(99), cr.EventRaceID)
	require.Len(t, cr.PersonResults, 1)
}

func TestDecodeClassResultAbortsOnMalformedPerson(t *testing.T) {
	_, err := DecodeClassResult(parse(t, `
		<ClassResult>
			<EventClass>
				<EventClassId>5</EventClassId>
				<ClassRaceInfo><EventRaceId>99</EventRaceId></ClassRaceInfo>
			</EventClass>
			<PersonResult>
				<Person><PersonName><Given>Anna</Given><Family>Svensson</Family></PersonName></Person>
				<Result><CompetitorStatus value="OK"/></Result>
			</PersonResult>
			<PersonResult>
				<Person><PersonId>9</PersonId></Person>
				<Result><CompetitorStatus value="OK"/></Result>
			</PersonResult>
		</ClassResult>`))
	assert.ErrorIs(t, err, ErrMissingField)
}
