package types

type OptionType string

type OptionState string

type MoneynessLabel string

const (
	TypeCall OptionType = "CALL"
	TypePut  OptionType = "PUT"

	OptionStateOpen        OptionState = "OPEN"
	OptionStateExercisable OptionState = "EXERCISABLE"
	OptionStateExercised   OptionState = "EXERCISED"
	OptionStateExpired     OptionState = "EXPIRED"

	MoneynessITM MoneynessLabel = "ITM"
	MoneynessATM MoneynessLabel = "ATM"
	MoneynessOTM MoneynessLabel = "OTM"
)
