package reconcile

// PartyKind tags which identity variant an Occupant or Vehicle holds.
type PartyKind string

const (
	PartyRegistered PartyKind = "registered"
	PartyGuest      PartyKind = "guest"
	PartyUnknown    PartyKind = "unknown"
)

// Occupant is the resolved person behind an operation.
// Only the fields of the variant named by Kind are populated.
type Occupant struct {
	Kind    PartyKind `json:"kind"`
	UserID  int64     `json:"user_id,omitempty"`
	Name    string    `json:"name,omitempty"`
	Contact string    `json:"contact,omitempty"`
}

// Vehicle is the resolved vehicle behind an operation.
type Vehicle struct {
	Kind      PartyKind `json:"kind"`
	VehicleID int64     `json:"vehicle_id,omitempty"`
	Plate     string    `json:"plate,omitempty"`
	Make      string    `json:"make,omitempty"`
	Model     string    `json:"model,omitempty"`
}

// ResolveOccupant picks the registered user if present, else the guest
// contact, else an unknown occupant.
func ResolveOccupant(user *RegisteredUser, guest *GuestContact) Occupant {
	if user != nil {
		contact := user.Email
		if contact == "" {
			contact = user.Phone
		}
		return Occupant{Kind: PartyRegistered, UserID: user.ID, Name: user.Name, Contact: contact}
	}
	if guest != nil && (guest.Name != "" || guest.Contact != "") {
		return Occupant{Kind: PartyGuest, Name: guest.Name, Contact: guest.Contact}
	}
	return Occupant{Kind: PartyUnknown}
}

// ResolveVehicle applies the same fallback rule as ResolveOccupant.
func ResolveVehicle(vehicle *RegisteredVehicle, guest *GuestVehicle) Vehicle {
	if vehicle != nil {
		return Vehicle{Kind: PartyRegistered, VehicleID: vehicle.ID, Plate: vehicle.Plate, Make: vehicle.Make, Model: vehicle.Model}
	}
	if guest != nil && guest.Plate != "" {
		return Vehicle{Kind: PartyGuest, Plate: guest.Plate, Make: guest.Make, Model: guest.Model}
	}
	return Vehicle{Kind: PartyUnknown}
}

// mergeOccupant prefers the reservation's identity and falls back to what
// was captured at entry.
func mergeOccupant(res *Reservation, occ *Occupation) Occupant {
	if res != nil {
		if o := ResolveOccupant(res.User, res.Guest); o.Kind != PartyUnknown {
			return o
		}
	}
	if occ != nil {
		return ResolveOccupant(occ.User, occ.Guest)
	}
	return Occupant{Kind: PartyUnknown}
}

func mergeVehicle(res *Reservation, occ *Occupation) Vehicle {
	if res != nil {
		if v := ResolveVehicle(res.Vehicle, res.GuestVehicle); v.Kind != PartyUnknown {
			return v
		}
	}
	if occ != nil {
		return ResolveVehicle(occ.Vehicle, occ.GuestVehicle)
	}
	return Vehicle{Kind: PartyUnknown}
}

// mergeSpace prefers the space physically occupied over the one assigned.
func mergeSpace(res *Reservation, occ *Occupation) *Space {
	if occ != nil && occ.Space != nil {
		return occ.Space
	}
	if res != nil {
		return res.Space
	}
	return nil
}
