package pose

// SkeletonConnections lists the keypoint-name pairs joined when rendering a
// COCO skeleton over a frame. Renderers consume this; nothing in the signal
// pipeline depends on it.
func SkeletonConnections() [][2]string {
	return [][2]string{
		{"nose", "left_eye"},
		{"left_eye", "left_ear"},
		{"nose", "right_eye"},
		{"right_eye", "right_ear"},
		{"left_ear", "left_shoulder"},
		{"right_ear", "right_shoulder"},
		{"left_shoulder", "right_shoulder"},
		{"left_shoulder", "left_elbow"},
		{"left_elbow", "left_wrist"},
		{"right_shoulder", "right_elbow"},
		{"right_elbow", "right_wrist"},
		{"left_shoulder", "left_hip"},
		{"right_shoulder", "right_hip"},
		{"left_hip", "right_hip"},
		{"left_hip", "left_knee"},
		{"left_knee", "left_ankle"},
		{"right_hip", "right_knee"},
		{"right_knee", "right_ankle"},
	}
}
