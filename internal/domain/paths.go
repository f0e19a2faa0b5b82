package domain

import "strings"

// Path helpers for the keyed tree layout shared with the feeder firmware.
// All user-scoped state lives under users/{userId}/distributors/{deviceId},
// device-level metadata under distributors/{deviceId}.

func distributorRoot(userID, distributorID string) string {
	return strings.Join([]string{"users", userID, "distributors", distributorID}, "/")
}

func CurrentWeightPath(userID, distributorID string) string {
	return distributorRoot(userID, distributorID) + "/currentWeight"
}

func QuantityPath(userID, distributorID string) string {
	return distributorRoot(userID, distributorID) + "/settings/quantity"
}

func CriticalThresholdPath(userID, distributorID string) string {
	return distributorRoot(userID, distributorID) + "/settings/criticalThreshold"
}

func PlanningPath(userID, distributorID string) string {
	return distributorRoot(userID, distributorID) + "/planning"
}

func SlotPath(userID, distributorID, slotID string) string {
	return PlanningPath(userID, distributorID) + "/" + slotID
}

func BreakPath(userID, distributorID string) string {
	return SlotPath(userID, distributorID, BreakSlotKey)
}

func TriggerNowPath(userID, distributorID string) string {
	return distributorRoot(userID, distributorID) + "/triggerNow"
}

func HistoryPath(userID, distributorID string) string {
	return distributorRoot(userID, distributorID) + "/history"
}

func HistoryEntryPath(userID, distributorID, entryID string) string {
	return HistoryPath(userID, distributorID) + "/" + entryID
}

func UserDistributorsPath(userID string) string {
	return "users/" + userID + "/distributors"
}

func UserDistributorIndexPath(userID, distributorID string) string {
	return UserDistributorsPath(userID) + "/" + distributorID
}

func DistributorStatusPath(distributorID string) string {
	return "distributors/" + distributorID + "/status"
}

func DistributorCapacityPath(distributorID string) string {
	return "distributors/" + distributorID + "/capacity"
}

func DistributorAssignedToPath(distributorID string) string {
	return "distributors/" + distributorID + "/assignedTo"
}

func DistributorLastUpdatePath(distributorID string) string {
	return "distributors/" + distributorID + "/lastUpdate"
}
