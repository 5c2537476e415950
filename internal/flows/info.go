package flows

// Static information texts answered to the "more flight" and "more cars"
// interruption keywords.
const (
	FlightClassInfo = "Standard - 2 or 3 seats next to each other, radio output in the seat, no meal, " +
		"cold beverage (water or juice)\n\n" +
		"Premium - onboarding priority over Standard class, 2 seats next to each other, " +
		"230V AC/DC connector and USB connector in the seat, 20% more space for legs then in the " +
		"Standard class, no meal, cold beverage (water or juice)\n\n" +
		"Business - Business lounge with buffet and open bar, onboarding priority over Premium and " +
		"Standard classes, separate seat which can be converted in to bed, 24 inches flat screen " +
		"(TV, DVD, USB, HDIM), headset, meal and beverage included"

	CarClassInfo = "Economy - Basic radio, manually opened windows and central aircondition. " +
		"Costs 15$ per a day.\n\n" +
		"Standard - Audio with jack and usb connectors, electric windows in first seats row, " +
		"separate aircondition for every seats row. Costs 40$ per a day.\n\n" +
		"Business - Hight class audio system with jack and usb connectors, colorful satellite " +
		"navigation with voice control, all electric windows and tailgate, separate aircondition " +
		"for every seat. Costs 80$ per a day."
)
